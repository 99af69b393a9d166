package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookie = "accessToken"

func SetAuthCookie(c *gin.Context, accessToken string) {
	setCookie(c, AccessTokenCookie, accessToken, AccessTokenExpiry)
}

func ClearAuthCookie(c *gin.Context) {
	setCookie(c, AccessTokenCookie, "", -time.Second)
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	secure := true
	if gin.Mode() != gin.ReleaseMode { // Toggle for local dev
		secure = false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secure, true)
}
