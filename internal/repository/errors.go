// Package repository holds every read and write the service performs against
// the relational store. Ownership is enforced here, handlers only map results
// to responses.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// isDuplicate reports whether err is a unique constraint violation. gorm
// translates the common cases when TranslateError is on, the message check
// covers handles opened without it.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
