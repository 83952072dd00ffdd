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

func NoteFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := d.Notes.Get(c.Request.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Note not found",
				"requestID": requestID,
			})
			return
		}

		request.InternalError(c, "Failed to fetch note", err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// noteIDParam reads :noteId, answering 400 itself when it isn't an ID
func noteIDParam(c *gin.Context) (uint, bool) {
	id, err := validators.ID(c.Param("noteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid note ID",
			"requestID": c.GetString("requestID"),
		})
		return 0, false
	}

	return id, true
}
