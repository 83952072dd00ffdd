package note

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/validators"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IDs are accepted both as JSON numbers and as numeric strings
type linkBody struct {
	NoteID     json.Number `json:"noteId"`
	CategoryID json.Number `json:"categoryId"`
}

type linkFunc func(ctx context.Context, noteID, categoryID, userID uint) (repository.Reason, error)

func NoteAssign(c *gin.Context, d *internal.Deps) {
	changeLink(c, d.Links.Assign, "Failed to assign category to note")
}

func NoteDeassign(c *gin.Context, d *internal.Deps) {
	changeLink(c, d.Links.Deassign, "Failed to remove category from note")
}

func changeLink(c *gin.Context, fn linkFunc, failMsg string) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data linkBody
	if !request.BindJSON(c, &data) {
		return
	}

	noteID, err := validators.NumberID(data.NoteID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid note ID",
			"requestID": requestID,
		})
		return
	}

	categoryID, err := validators.NumberID(data.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid category ID",
			"requestID": requestID,
		})
		return
	}

	reason, err := fn(c.Request.Context(), noteID, categoryID, userID)
	if err != nil {
		request.InternalError(c, failMsg, err)
		return
	}

	if reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     string(reason),
			"requestID": requestID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
