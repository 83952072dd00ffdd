// Package note contains the note endpoints, including linking notes to
// categories
package note

import (
	"bitwise74/notes-api/api/request"
	"bitwise74/notes-api/internal"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/pkg/validators"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NoteList returns one page of the user's notes.
//
// Query params: page, limit, searchTerm, categoryId, sortBy, sortOrder
func NoteList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	sortBy, sortOrder, err := validators.SortValidator(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	page, err := d.Notes.List(c.Request.Context(), userID, repository.NoteFilter{
		Search:     c.Query("searchTerm"),
		CategoryID: validators.OptionalID(c.Query("categoryId")),
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Page:       validators.PositiveOr(c.Query("page"), repository.DefaultPage),
		Limit:      validators.PositiveOr(c.Query("limit"), repository.DefaultLimit),
	})
	if err != nil {
		request.InternalError(c, "Failed to list notes", err)
		return
	}

	c.JSON(http.StatusOK, page)
}
