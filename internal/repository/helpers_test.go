package repository

import (
	"bitwise74/notes-api/config"
	"bitwise74/notes-api/db"
	"bitwise74/notes-api/internal/model"
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// newTestDB returns a migrated in-memory sqlite database private to the test
func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("notes_%d", dbSeq.Add(1))
	conn, err := db.New(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)

	t.Cleanup(func() { db.Close(conn) })

	require.NoError(t, db.Migrate(context.Background(), conn))

	return conn
}

func seedUser(t testing.TB, conn *gorm.DB, name string) uint {
	t.Helper()

	u := &model.User{
		Username: name,
		Email:    name + "@example.com",
		Password: "hash",
		Verified: true,
	}
	require.NoError(t, conn.Create(u).Error)

	return u.ID
}

func seedNote(t testing.TB, conn *gorm.DB, userID uint, title, content string, createdAt time.Time) uint {
	t.Helper()

	n := &model.Note{
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, conn.Create(n).Error)

	return n.ID
}

func seedCategory(t testing.TB, conn *gorm.DB, userID uint, name string) uint {
	t.Helper()

	c := &model.Category{Name: name, UserID: userID}
	require.NoError(t, conn.Create(c).Error)

	return c.ID
}

func link(t testing.TB, conn *gorm.DB, noteID, categoryID uint) {
	t.Helper()

	require.NoError(t, conn.Create(&model.NoteCategory{NoteID: noteID, CategoryID: categoryID}).Error)
}

func countLinks(t testing.TB, conn *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, conn.Model(&model.NoteCategory{}).Count(&n).Error)

	return n
}

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func ptr[T any](v T) *T {
	return &v
}
