package note

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

func NoteOwns(c *gin.Context, d *internal.Deps) {
	userID := c.MustGet("userID").(uint)

	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	owns, err := d.Guard.Authorize(c.Request.Context(), repository.KindNote, noteID, userID)
	if err != nil {
		request.InternalError(c, "Failed to check if user owns a note", err)
		return
	}

	if owns {
		c.JSON(http.StatusOK, gin.H{"owns": true})
		return
	}

	c.JSON(http.StatusForbidden, gin.H{"owns": false})
}
