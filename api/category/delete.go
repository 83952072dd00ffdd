package category

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CategoryDelete removes a category. Its links go with it, the notes stay.
func CategoryDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	err := d.Categories.Delete(c.Request.Context(), categoryID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Category not found",
				"requestID": requestID,
			})
			return
		}

		request.InternalError(c, "Failed to delete category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
