package note

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/pkg/validators"
	"net/http"

	"github.com/gin-gonic/gin"
)

type createBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NoteCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	var data createBody
	if !request.BindJSON(c, &data) {
		return
	}

	for _, err := range []error{
		validators.TitleValidator(data.Title),
		validators.ContentValidator(data.Content),
	} {
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	note, err := d.Notes.Create(c.Request.Context(), userID, data.Title, data.Content)
	if err != nil {
		request.InternalError(c, "Failed to create note", err)
		return
	}

	c.JSON(http.StatusCreated, note)
}
