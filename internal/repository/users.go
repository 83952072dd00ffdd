package repository

import (
	"bitwise74/notes-api/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// UserStatus tells whether an email is already taken and by what kind of
// account
type UserStatus int

const (
	StatusFree UserStatus = iota
	StatusExisting
	StatusPending
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create stores a new unverified user. An email that is already registered
// yields ErrDuplicate.
func (r *Users) Create(ctx context.Context, username, email, hash, token string) (*model.User, error) {
	u := &model.User{
		Username:          username,
		Email:             email,
		Password:          hash,
		VerificationToken: &token,
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	return u, nil
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *Users) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *Users) findOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find user, %w", err)
	}

	return &u, nil
}

// Status reports whether email belongs to a verified account, to one still
// waiting for verification or to nobody
func (r *Users) Status(ctx context.Context, email string) (UserStatus, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusFree, nil
		}

		return StatusFree, err
	}

	if u.Verified {
		return StatusExisting, nil
	}

	return StatusPending, nil
}

// MarkVerified flags the account behind email as verified and clears its
// verification token
func (r *Users) MarkVerified(ctx context.Context, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&model.User{}).
			Where("email = ?", email).
			Updates(map[string]any{
				"verified":           true,
				"verification_token": nil,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Where("email = ?", email).First(&u).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to verify user, %w", err)
	}

	return &u, nil
}

// DeleteUnverifiedBefore removes accounts that were never verified and were
// created before t. It returns how many accounts were removed.
func (r *Users) DeleteUnverifiedBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("verified = ? AND created_at < ?", false, t).
		Delete(&model.User{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete unverified users, %w", res.Error)
	}

	return res.RowsAffected, nil
}
