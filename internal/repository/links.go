package repository

import (
	"bitwise74/notes-api/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reason is a user facing explanation of why a link change was refused. The
// empty Reason means the change went through.
type Reason string

const (
	ReasonNoteMissing     Reason = "Note does not exist"
	ReasonCategoryMissing Reason = "Category does not exist"
)

// Links manages the note to category relation. Both sides of a link always
// belong to the same user.
type Links struct {
	db *gorm.DB
}

func NewLinks(db *gorm.DB) *Links {
	return &Links{db: db}
}

// Assign links a note to a category. Linking an already linked pair succeeds
// without writing anything.
func (l *Links) Assign(ctx context.Context, noteID, categoryID, userID uint) (Reason, error) {
	return l.change(ctx, noteID, categoryID, userID, func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.NoteCategory{NoteID: noteID, CategoryID: categoryID}).
			Error
	})
}

// Deassign removes the link between a note and a category. Removing a link
// that doesn't exist is not an error.
func (l *Links) Deassign(ctx context.Context, noteID, categoryID, userID uint) (Reason, error) {
	return l.change(ctx, noteID, categoryID, userID, func(tx *gorm.DB) error {
		return tx.
			Where("note_id = ? AND category_id = ?", noteID, categoryID).
			Delete(&model.NoteCategory{}).
			Error
	})
}

func (l *Links) change(ctx context.Context, noteID, categoryID, userID uint, write func(tx *gorm.DB) error) (Reason, error) {
	var reason Reason

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := authorize(tx, KindNote, noteID, userID, true)
		if err != nil {
			return err
		}
		if !ok {
			reason = ReasonNoteMissing
			return nil
		}

		ok, err = authorize(tx, KindCategory, categoryID, userID, true)
		if err != nil {
			return err
		}
		if !ok {
			reason = ReasonCategoryMissing
			return nil
		}

		if err := write(tx); err != nil {
			return fmt.Errorf("failed to write note link, %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return reason, nil
}
