// Package request holds helpers shared by the handler packages
package request

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BindJSON decodes the JSON body of c into v. On failure it writes the error
// response itself and returns false.
func BindJSON(c *gin.Context, v any) bool {
	requestID := c.GetString("requestID")

	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":     "Request body size exceeds limit",
			"requestID": requestID,
		})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"error":     "Malformed or invalid JSON request body",
		"requestID": requestID,
	})

	zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
	return false
}

// InternalError answers with a generic 500 and logs err with msg
func InternalError(c *gin.Context, msg string, err error) {
	requestID := c.GetString("requestID")

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(msg, zap.Error(err), zap.String("requestID", requestID))
}
