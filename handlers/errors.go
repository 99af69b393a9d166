package handlers

import (
	"DentalCenter/middlewares"
	"DentalCenter/models"
	"DentalCenter/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var fields validation.Errors
	switch {
	case errors.As(err, &fields):
		middlewares.ValidationError(c, fields, err)
	case errors.Is(err, services.ErrNotFound):
		middlewares.HttpError(c, "not found", http.StatusNotFound, err)
	case errors.Is(err, services.ErrEmailTaken):
		middlewares.HttpError(c, services.ErrEmailTaken.Error(), http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		middlewares.HttpError(c, services.ErrInvalidCredentials.Error(), http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrPasswordMismatch):
		middlewares.HttpError(c, services.ErrPasswordMismatch.Error(), http.StatusBadRequest, err)
	default:
		middlewares.HttpError(c, "internal server error", http.StatusInternalServerError, err)
	}
}

func badRequestBody(c *gin.Context, err error) {
	middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
}

func currentUser(c *gin.Context) (models.User, bool) {
	user, err := middlewares.ExtractUserFromContext(c.Request.Context())
	if err != nil {
		c.Redirect(http.StatusFound, middlewares.LoginPath)
		c.Abort()
		return models.User{}, false
	}
	return user, true
}
