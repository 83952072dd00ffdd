package note

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NoteDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	err := d.Notes.Delete(c.Request.Context(), noteID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Note not found",
				"requestID": requestID,
			})
			return
		}

		request.InternalError(c, "Failed to delete note", err)
		return
	}

	zap.L().Debug("Note deleted", zap.Uint("noteID", noteID), zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{"success": true})
}
