package category

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/validators"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func CategoryEdit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	categoryID, ok := categoryIDParam(c)
	if !ok {
		return
	}

	var data nameBody
	if !request.BindJSON(c, &data) {
		return
	}

	data.Name = strings.TrimSpace(data.Name)

	if err := validators.CategoryNameValidator(data.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	category, err := d.Categories.Edit(c.Request.Context(), categoryID, userID, data.Name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Category not found",
				"requestID": requestID,
			})
		case errors.Is(err, repository.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Category with this name already exists",
				"requestID": requestID,
			})
		default:
			request.InternalError(c, "Failed to edit category", err)
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

func categoryIDParam(c *gin.Context) (uint, bool) {
	id, err := validators.ID(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid category ID",
			"requestID": c.GetString("requestID"),
		})
		return 0, false
	}

	return id, true
}
