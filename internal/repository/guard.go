package repository

import (
	"bitwise74/notes-api/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind names the entity a Guard check runs against
type Kind string

const (
	KindNote     Kind = "note"
	KindCategory Kind = "category"
)

func (k Kind) model() (any, error) {
	switch k {
	case KindNote:
		return &model.Note{}, nil
	case KindCategory:
		return &model.Category{}, nil
	default:
		return nil, fmt.Errorf("unknown entity kind %q", k)
	}
}

type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// Authorize reports whether the entity of the given kind exists and belongs
// to userID. A missing entity and one owned by somebody else both yield
// false so callers can't tell them apart. The error is only set on storage
// failures.
func (g *Guard) Authorize(ctx context.Context, kind Kind, id, userID uint) (bool, error) {
	return authorize(g.db.WithContext(ctx), kind, id, userID, false)
}

// authorize runs the ownership lookup on tx. With lock set the matched row is
// held in share mode until tx ends, so it can't be deleted underneath a
// write that depends on it.
func authorize(tx *gorm.DB, kind Kind, id, userID uint, lock bool) (bool, error) {
	m, err := kind.model()
	if err != nil {
		return false, err
	}

	q := tx.Model(m).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1)

	if lock {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}

	var ids []uint
	if err := q.Pluck("id", &ids).Error; err != nil {
		return false, fmt.Errorf("failed to check %s ownership, %w", kind, err)
	}

	return len(ids) == 1, nil
}
