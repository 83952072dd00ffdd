package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestLinksAssign(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")

	note := seedNote(t, conn, alice, "groceries", "milk and bread", at(0))
	home := seedCategory(t, conn, alice, "home")
	work := seedCategory(t, conn, alice, "work")
	bobsNote := seedNote(t, conn, bob, "secret", "nothing to see here", at(1))
	bobsCategory := seedCategory(t, conn, bob, "private")

	l := NewLinks(conn)
	notes := NewNotes(conn)

	t.Run("links own note and category", func(t *testing.T) {
		reason, err := l.Assign(ctx, note, work, alice)
		require.NoError(t, err)
		assert.Empty(t, reason)

		reason, err = l.Assign(ctx, note, home, alice)
		require.NoError(t, err)
		assert.Empty(t, reason)

		v, err := notes.Get(ctx, note, alice)
		require.NoError(t, err)
		require.Len(t, v.Categories, 2)
		assert.Equal(t, "home", v.Categories[0].Name)
		assert.Equal(t, "work", v.Categories[1].Name)
	})

	t.Run("assigning twice keeps a single link", func(t *testing.T) {
		before := countLinks(t, conn)

		reason, err := l.Assign(ctx, note, home, alice)
		require.NoError(t, err)
		assert.Empty(t, reason)
		assert.Equal(t, before, countLinks(t, conn))
	})

	t.Run("foreign note", func(t *testing.T) {
		reason, err := l.Assign(ctx, bobsNote, home, alice)
		require.NoError(t, err)
		assert.Equal(t, ReasonNoteMissing, reason)
	})

	t.Run("missing note", func(t *testing.T) {
		reason, err := l.Assign(ctx, 9999, home, alice)
		require.NoError(t, err)
		assert.Equal(t, ReasonNoteMissing, reason)
	})

	t.Run("foreign category", func(t *testing.T) {
		before := countLinks(t, conn)

		reason, err := l.Assign(ctx, note, bobsCategory, alice)
		require.NoError(t, err)
		assert.Equal(t, ReasonCategoryMissing, reason)
		assert.Equal(t, before, countLinks(t, conn))
	})

	t.Run("note is checked before category", func(t *testing.T) {
		reason, err := l.Assign(ctx, 9999, 9999, alice)
		require.NoError(t, err)
		assert.Equal(t, ReasonNoteMissing, reason)
	})
}

func TestLinksDeassign(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")

	note := seedNote(t, conn, alice, "groceries", "milk and bread", at(0))
	home := seedCategory(t, conn, alice, "home")
	bobsCategory := seedCategory(t, conn, bob, "private")
	link(t, conn, note, home)

	l := NewLinks(conn)

	reason, err := l.Deassign(ctx, note, bobsCategory, alice)
	require.NoError(t, err)
	assert.Equal(t, ReasonCategoryMissing, reason)

	reason, err = l.Deassign(ctx, note, home, bob)
	require.NoError(t, err)
	assert.Equal(t, ReasonNoteMissing, reason)
	assert.EqualValues(t, 1, countLinks(t, conn))

	reason, err = l.Deassign(ctx, note, home, alice)
	require.NoError(t, err)
	assert.Empty(t, reason)
	assert.EqualValues(t, 0, countLinks(t, conn))

	// Removing a link that is already gone is fine
	reason, err = l.Deassign(ctx, note, home, alice)
	require.NoError(t, err)
	assert.Empty(t, reason)
}

func TestLinksCascade(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	first := seedNote(t, conn, alice, "first", "first note body", at(0))
	second := seedNote(t, conn, alice, "second", "second note body", at(1))
	home := seedCategory(t, conn, alice, "home")
	work := seedCategory(t, conn, alice, "work")

	link(t, conn, first, home)
	link(t, conn, first, work)
	link(t, conn, second, work)

	require.NoError(t, NewNotes(conn).Delete(ctx, first, alice))
	assert.EqualValues(t, 1, countLinks(t, conn))

	require.NoError(t, NewCategories(conn).Delete(ctx, work, alice))
	assert.EqualValues(t, 0, countLinks(t, conn))
}

func newPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	return conn, mock
}

func TestLinksAssign_LocksRowsInOneTransaction(t *testing.T) {
	conn, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^SELECT "id" FROM "notes" WHERE id = \$1 AND user_id = \$2 LIMIT (\$3|1) FOR SHARE$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(`(?s)^SELECT "id" FROM "categories" WHERE id = \$1 AND user_id = \$2 LIMIT (\$3|1) FOR SHARE$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "note_categories" ("note_id","category_id") VALUES ($1,$2) ON CONFLICT DO NOTHING`)).
		WithArgs(4, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reason, err := NewLinks(conn).Assign(context.Background(), 4, 7, 2)
	require.NoError(t, err)
	assert.Empty(t, reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinksAssign_MissingCategoryRollsBackNothing(t *testing.T) {
	conn, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^SELECT "id" FROM "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(`(?s)^SELECT "id" FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	reason, err := NewLinks(conn).Assign(context.Background(), 4, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, ReasonCategoryMissing, reason)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinksAssign_StorageFailureRollsBack(t *testing.T) {
	conn, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^SELECT "id" FROM "notes"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	reason, err := NewLinks(conn).Assign(context.Background(), 4, 7, 2)
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, reason)
	require.NoError(t, mock.ExpectationsWereMet())
}
