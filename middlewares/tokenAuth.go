package middlewares

import (
	"DentalCenter/models"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginPath is where unauthenticated and unauthorized requests are sent.
const LoginPath = "/login"

// ContextKey defines a custom context key type to store user details in the context.
type contextKey string

const userKey contextKey = "user"

// Authorizer resolves an access token to a user holding one of roles.
type Authorizer interface {
	Authorize(token string, roles ...models.Role) (models.User, error)
}

// TokenAuthMiddleware validates the token and adds the user to the request
// context. Requests without a valid token, or with a role outside roles, are
// redirected to the login page.
func TokenAuthMiddleware(auth Authorizer, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			redirectToLogin(c, "missing access token", nil)
			return
		}

		user, err := auth.Authorize(token, roles...)
		if err != nil {
			redirectToLogin(c, "access denied", err)
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

func redirectToLogin(c *gin.Context, reason string, err error) {
	Logger(c).Info(reason,
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

// ExtractUserFromContext retrieves the authenticated user from the context.
func ExtractUserFromContext(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(userKey).(models.User)
	if !ok {
		return models.User{}, errors.New("user not found in context")
	}
	return user, nil
}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
