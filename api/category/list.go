// Package category contains the category endpoints
package category

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func CategoryList(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	categories, err := d.Categories.List(c.Request.Context(), userID)
	if err != nil {
		request.InternalError(c, "Failed to list categories", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
