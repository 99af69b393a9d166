package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log := Logger(c)
	if status >= 500 {
		log.Error(message, zap.Int("status", status), zap.Error(err))
	} else {
		log.Info(message, zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// ValidationError writes field errors under "fields" next to the message.
func ValidationError(c *gin.Context, fields interface{}, err error) {
	Logger(c).Info("validation failed", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
}
