package middlewares

import (
	"DentalCenter/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

// extractToken looks for the access token in the session cookie, the
// accessToken query parameter and the Authorization header, in that order.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(utils.AccessTokenCookie); err == nil && token != "" {
		return token
	}
	if token := c.Query("accessToken"); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
