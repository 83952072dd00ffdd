package repository

import (
	"bitwise74/notes-api/internal/model"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Categories struct {
	db *gorm.DB
}

func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

// List returns every category of userID ordered by name
func (r *Categories) List(ctx context.Context, userID uint) ([]model.Category, error) {
	categories := []model.Category{}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Order("id ASC").
		Find(&categories).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories, %w", err)
	}

	return categories, nil
}

// Create stores a new category. A name the user already has yields
// ErrDuplicate.
func (r *Categories) Create(ctx context.Context, userID uint, name string) (*model.Category, error) {
	c := &model.Category{
		Name:   name,
		UserID: userID,
	}

	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}

		return nil, fmt.Errorf("failed to create category, %w", err)
	}

	return c, nil
}

// Edit renames a category of userID
func (r *Categories) Edit(ctx context.Context, categoryID, userID uint, name string) (*model.Category, error) {
	var c model.Category

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&model.Category{}).
			Where("id = ? AND user_id = ?", categoryID, userID).
			Update("name", name)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Where("id = ?", categoryID).First(&c).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, err
		case isDuplicate(err):
			return nil, ErrDuplicate
		}

		return nil, fmt.Errorf("failed to edit category, %w", err)
	}

	return &c, nil
}

// Delete removes a category of userID and unlinks it from every note
func (r *Categories) Delete(ctx context.Context, categoryID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&model.Category{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete category, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
