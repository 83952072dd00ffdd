package repository

import (
	"bitwise74/notes-api/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Notes struct {
	db *gorm.DB
}

func NewNotes(db *gorm.DB) *Notes {
	return &Notes{db: db}
}

func (r *Notes) Create(ctx context.Context, userID uint, title, content string) (*model.Note, error) {
	n := &model.Note{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, fmt.Errorf("failed to create note, %w", err)
	}

	return n, nil
}

// NoteChanges lists the fields of a note an edit touches. Nil fields are
// left as they are.
type NoteChanges struct {
	Title   *string
	Content *string
}

// Edit applies ch to a note of userID. updated_at is refreshed even when ch
// is empty.
func (r *Notes) Edit(ctx context.Context, noteID, userID uint, ch NoteChanges) (*model.Note, error) {
	updates := map[string]any{
		"updated_at": time.Now(),
	}

	if ch.Title != nil {
		updates["title"] = *ch.Title
	}
	if ch.Content != nil {
		updates["content"] = *ch.Content
	}

	var n model.Note

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&model.Note{}).
			Where("id = ? AND user_id = ?", noteID, userID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Where("id = ?", noteID).First(&n).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to edit note, %w", err)
	}

	return &n, nil
}

// Delete removes a note of userID. Its category links go with it.
func (r *Notes) Delete(ctx context.Context, noteID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteID, userID).
		Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete note, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
