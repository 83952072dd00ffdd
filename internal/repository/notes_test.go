package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesCreate(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	r := NewNotes(conn)

	n, err := r.Create(ctx, alice, "groceries", "milk and bread")
	require.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.Equal(t, alice, n.UserID)
	assert.False(t, n.CreatedAt.IsZero())

	v, err := r.Get(ctx, n.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "groceries", v.Title)
	assert.Empty(t, v.Categories)
}

func TestNotesEdit(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")
	id := seedNote(t, conn, alice, "groceries", "milk and bread", at(0))

	r := NewNotes(conn)

	n, err := r.Edit(ctx, id, alice, NoteChanges{Title: ptr("shopping")})
	require.NoError(t, err)
	assert.Equal(t, "shopping", n.Title)
	assert.Equal(t, "milk and bread", n.Content, "untouched fields stay")
	assert.True(t, n.UpdatedAt.After(at(0)))
	assert.True(t, n.CreatedAt.Equal(at(0)))

	n, err = r.Edit(ctx, id, alice, NoteChanges{Content: ptr("eggs and cheese")})
	require.NoError(t, err)
	assert.Equal(t, "shopping", n.Title)
	assert.Equal(t, "eggs and cheese", n.Content)

	_, err = r.Edit(ctx, id, bob, NoteChanges{Title: ptr("stolen")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.Edit(ctx, id+10, alice, NoteChanges{Title: ptr("ghost")})
	require.ErrorIs(t, err, ErrNotFound)

	v, err := r.Get(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, "shopping", v.Title)
}

func TestNotesDelete(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")
	id := seedNote(t, conn, alice, "groceries", "milk and bread", at(0))

	r := NewNotes(conn)

	require.ErrorIs(t, r.Delete(ctx, id, bob), ErrNotFound)
	require.NoError(t, r.Delete(ctx, id, alice))
	require.ErrorIs(t, r.Delete(ctx, id, alice), ErrNotFound)

	_, err := r.Get(ctx, id, alice)
	require.ErrorIs(t, err, ErrNotFound)
}
