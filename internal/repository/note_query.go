package repository

import (
	"bitwise74/notes-api/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortColumn is a column notes can be ordered by
type SortColumn string

const (
	SortCreatedAt SortColumn = "created_at"
	SortUpdatedAt SortColumn = "updated_at"
	SortTitle     SortColumn = "title"
)

func (s SortColumn) Valid() bool {
	switch s {
	case SortCreatedAt, SortUpdatedAt, SortTitle:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

func (s SortOrder) Valid() bool {
	return s == SortAsc || s == SortDesc
}

var ErrInvalidSort = errors.New("invalid sort column or order")

// NoteFilter narrows down and orders a note listing. Zero values select the
// defaults: no search, no category, newest first, first page of 10.
type NoteFilter struct {
	Search     string
	CategoryID *uint
	SortBy     SortColumn
	SortOrder  SortOrder
	Page       int
	Limit      int
}

func (f NoteFilter) normalize() (NoteFilter, error) {
	if f.SortBy == "" {
		f.SortBy = SortCreatedAt
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	if !f.SortBy.Valid() || !f.SortOrder.Valid() {
		return f, ErrInvalidSort
	}

	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	f.Limit = min(f.Limit, MaxLimit)

	f.Search = strings.TrimSpace(f.Search)

	return f, nil
}

// predicates returns the WHERE conditions shared by the data and the count
// query. Both queries alias notes as n. like is the case-insensitive LIKE
// operator of the dialect.
func (f NoteFilter) predicates(userID uint, like string) []sq.Sqlizer {
	preds := []sq.Sqlizer{sq.Eq{"n.user_id": userID}}

	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		preds = append(preds, sq.Or{
			sq.Expr(`n.title `+like+` ? ESCAPE '\'`, pattern),
			sq.Expr(`n.content `+like+` ? ESCAPE '\'`, pattern),
		})
	}

	if f.CategoryID != nil {
		preds = append(preds, sq.Expr(
			"EXISTS (SELECT 1 FROM note_categories f WHERE f.note_id = n.id AND f.category_id = ?)",
			*f.CategoryID,
		))
	}

	return preds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Pagination describes the page that was served. Limit is the page size
// actually used, which can be smaller than the requested one.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalNotes  int64 `json:"totalNotes"`
	Limit       int   `json:"limit"`
}

type NotePage struct {
	Notes      []model.NoteView `json:"notes"`
	Pagination Pagination       `json:"pagination"`
}

// likeOperator matches case-insensitively. sqlite's LIKE already ignores
// ASCII case while its LOWER leaves other letters alone, so terms are
// matched as typed there.
func (r *Notes) likeOperator() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "LIKE"
	}

	return "ILIKE"
}

// categoriesColumn aggregates the joined categories of a note into a JSON
// array of {id, name} pairs. Notes without categories get an empty array.
func (r *Notes) categoriesColumn() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "COALESCE(json_group_array(json_object('id', c.id, 'name', c.name)) FILTER (WHERE c.id IS NOT NULL), '[]') AS categories"
	}

	return "COALESCE(json_agg(json_build_object('id', c.id, 'name', c.name)) FILTER (WHERE c.id IS NOT NULL), '[]') AS categories"
}

func (r *Notes) viewQuery() sq.SelectBuilder {
	return sq.
		Select("n.id", "n.title", "n.content", "n.created_at", "n.updated_at", r.categoriesColumn()).
		From("notes n").
		LeftJoin("note_categories nc ON nc.note_id = n.id").
		LeftJoin("categories c ON c.id = nc.category_id").
		GroupBy("n.id")
}

// List returns one page of the notes owned by userID that match f, together
// with the pagination data for the whole filtered set.
func (r *Notes) List(ctx context.Context, userID uint, f NoteFilter) (*NotePage, error) {
	f, err := f.normalize()
	if err != nil {
		return nil, err
	}

	preds := f.predicates(userID, r.likeOperator())

	data := r.viewQuery().
		OrderBy(
			fmt.Sprintf("n.%s %s", f.SortBy, f.SortOrder),
			fmt.Sprintf("n.id %s", f.SortOrder),
		).
		Limit(uint64(f.Limit)).
		Offset(uint64((f.Page - 1) * f.Limit))

	count := sq.Select("COUNT(*)").From("notes n")

	for _, p := range preds {
		data = data.Where(p)
		count = count.Where(p)
	}

	dataSQL, dataArgs, err := data.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build note query, %w", err)
	}

	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build note count query, %w", err)
	}

	db := r.db.WithContext(ctx)

	notes := []model.NoteView{}
	if err := db.Raw(dataSQL, dataArgs...).Scan(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notes, %w", err)
	}

	var total int64
	if err := db.Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notes, %w", err)
	}

	return &NotePage{
		Notes: notes,
		Pagination: Pagination{
			CurrentPage: f.Page,
			TotalPages:  int((total + int64(f.Limit) - 1) / int64(f.Limit)),
			TotalNotes:  total,
			Limit:       f.Limit,
		},
	}, nil
}

// Get returns a single note of userID in the same shape List uses
func (r *Notes) Get(ctx context.Context, noteID, userID uint) (*model.NoteView, error) {
	sql, args, err := r.viewQuery().
		Where(sq.Eq{"n.id": noteID, "n.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build note query, %w", err)
	}

	var notes []model.NoteView
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to get note, %w", err)
	}

	if len(notes) == 0 {
		return nil, ErrNotFound
	}

	return &notes[0], nil
}
