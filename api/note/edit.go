package note

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fields left out of the body are left untouched
type editBody struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func NoteEdit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	var data editBody
	if !request.BindJSON(c, &data) {
		return
	}

	if err := validators.NoteEditValidator(data.Title, data.Content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	note, err := d.Notes.Edit(c.Request.Context(), noteID, userID, repository.NoteChanges{
		Title:   data.Title,
		Content: data.Content,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Note not found",
				"requestID": requestID,
			})
			return
		}

		request.InternalError(c, "Failed to edit note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}
