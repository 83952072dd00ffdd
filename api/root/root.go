// Package root contains endpoints that aren't tied to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status reports that the server is up
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Running"})
}

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate answers 200 to any request that made it past the JWT middleware
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
