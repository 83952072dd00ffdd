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

type nameBody struct {
	Name string `json:"name"`
}

func CategoryCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

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

	category, err := d.Categories.Create(c.Request.Context(), userID, data.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Category with this name already exists",
				"requestID": requestID,
			})
			return
		}

		request.InternalError(c, "Failed to create category", err)
		return
	}

	c.JSON(http.StatusCreated, category)
}
