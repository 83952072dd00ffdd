package repository

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type seeded struct {
	id         uint
	owner      uint
	title      string
	content    string
	categories []uint
}

// TestList_PagesCoverFilteredSet checks that, for any filter, walking every
// page yields exactly the notes the filter selects and that the reported
// totals agree with it.
func TestList_PagesCoverFilteredSet(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, conn, "alice")
	bob := seedUser(t, conn, "bob")

	aliceCats := []uint{
		seedCategory(t, conn, alice, "home"),
		seedCategory(t, conn, alice, "work"),
		seedCategory(t, conn, alice, "ideas"),
	}
	bobCat := seedCategory(t, conn, bob, "home")

	words := []string{"alpha", "beta", "gamma", "delta"}

	var corpus []seeded
	for i := range 23 {
		owner := alice
		if i%5 == 0 {
			owner = bob
		}

		title := words[i%len(words)] + " note"
		content := "body of " + words[(i*3)%len(words)]

		id := seedNote(t, conn, owner, title, content, at(i))
		s := seeded{id: id, owner: owner, title: title, content: content}

		if owner == alice {
			for j, c := range aliceCats {
				if (i+j)%3 == 0 {
					link(t, conn, id, c)
					s.categories = append(s.categories, c)
				}
			}
		} else if i%2 == 0 {
			link(t, conn, id, bobCat)
			s.categories = append(s.categories, bobCat)
		}

		corpus = append(corpus, s)
	}

	r := NewNotes(conn)

	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 12).Draw(rt, "limit")
		search := rapid.SampledFrom([]string{"", "ALPHA", "body of g", "note", "zeta", "  "}).Draw(rt, "search")
		catIdx := rapid.IntRange(-1, len(aliceCats)).Draw(rt, "category")

		f := NoteFilter{Search: search, Limit: limit, SortBy: SortTitle, SortOrder: SortAsc}
		if catIdx >= 0 && catIdx < len(aliceCats) {
			f.CategoryID = &aliceCats[catIdx]
		} else if catIdx == len(aliceCats) {
			f.CategoryID = &bobCat
		}

		var want []uint
		term := strings.ToLower(strings.TrimSpace(search))
		for _, s := range corpus {
			if s.owner != alice {
				continue
			}
			if term != "" && !strings.Contains(strings.ToLower(s.title), term) && !strings.Contains(strings.ToLower(s.content), term) {
				continue
			}
			if f.CategoryID != nil && !slices.Contains(s.categories, *f.CategoryID) {
				continue
			}
			want = append(want, s.id)
		}

		first, err := r.List(ctx, alice, f)
		require.NoError(rt, err)

		total := first.Pagination.TotalNotes
		require.EqualValues(rt, len(want), total)
		require.Equal(rt, int((total+int64(limit)-1)/int64(limit)), first.Pagination.TotalPages)

		var got []uint
		for p := 1; p <= first.Pagination.TotalPages; p++ {
			f.Page = p

			page, err := r.List(ctx, alice, f)
			require.NoError(rt, err)
			require.Equal(rt, p, page.Pagination.CurrentPage)
			require.Equal(rt, first.Pagination, Pagination{
				CurrentPage: 1,
				TotalPages:  page.Pagination.TotalPages,
				TotalNotes:  page.Pagination.TotalNotes,
				Limit:       limit,
			})

			if p < first.Pagination.TotalPages {
				require.Len(rt, page.Notes, limit)
			}

			for _, n := range page.Notes {
				got = append(got, n.ID)
			}
		}

		require.ElementsMatch(rt, want, got)
	})
}
