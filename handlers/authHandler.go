package handlers

import (
	"DentalCenter/models"
	"DentalCenter/services"
	"DentalCenter/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// LoginPage describes the login form protected routes redirect to.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sign in to the dental center",
		"action":  "/login",
		"fields":  []string{"email", "password"},
	})
}

// Login authenticates the user, sets the session cookie and returns the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequestBody(c, err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": user, "accessToken": token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	h.service.Logout(c.Request.Context(), user)
	utils.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session returns the token's user together with the last persisted sign-in,
// which is null once that user has logged out.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	stored, err := h.service.StoredSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "lastSignIn": stored})
}

// ChangePassword lets a patient replace their own password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var change models.PasswordChange
	if err := c.ShouldBindJSON(&change); err != nil {
		badRequestBody(c, err)
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), user.PatientID, change); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
