package validators

import (
	"bitwise74/notes-api/internal/repository"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var (
	ErrSortColumn = errors.New("invalid sort column, use 'created_at', 'updated_at' or 'title'")
	ErrSortOrder  = errors.New("invalid sort order, use 'ASC' or 'DESC'")
	ErrInvalidID  = errors.New("ID must be a positive integer")
)

// SortValidator checks the requested ordering against the allowed columns and
// directions. Empty values select the defaults.
func SortValidator(by, order string) (repository.SortColumn, repository.SortOrder, error) {
	col := repository.SortColumn(by)
	if by == "" {
		col = repository.SortCreatedAt
	}
	if !col.Valid() {
		return "", "", ErrSortColumn
	}

	ord := repository.SortOrder(order)
	if order == "" {
		ord = repository.SortDesc
	}
	if !ord.Valid() {
		return "", "", ErrSortOrder
	}

	return col, ord, nil
}

// PositiveOr parses s as a positive integer and falls back to def when it is
// missing, malformed or smaller than 1
func PositiveOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}

	return n
}

// OptionalID parses an optional id filter. Anything that isn't a positive
// integer means no filter.
func OptionalID(s string) *uint {
	id, err := ID(s)
	if err != nil {
		return nil
	}

	return &id
}

// ID parses a required id, e.g. from a path parameter. IDs are stored as
// 32 bit signed integers, so anything above math.MaxInt32 is invalid.
func ID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}

	return uint(n), nil
}

// NumberID is ID for numbers decoded from JSON bodies
func NumberID(n json.Number) (uint, error) {
	if n == "" {
		return 0, ErrInvalidID
	}

	return ID(n.String())
}
