package collections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flixvault/flixvault/internal/models"
)

func TestStore_AddContainsRemove(t *testing.T) {
	s := NewStore()

	require.False(t, s.Contains("favorites", 1))

	require.True(t, s.Add("favorites", models.MediaItem{ID: 1, Title: "Alien"}))
	require.True(t, s.Contains("favorites", 1))
	require.Equal(t, 1, s.Count("favorites"))

	removed, ok := s.Remove("favorites", 1)
	require.True(t, ok)
	require.Equal(t, "Alien", removed.Title)
	require.False(t, s.Contains("favorites", 1))
}

func TestStore_AddDuplicateKeepsFirstValue(t *testing.T) {
	s := NewStore()

	require.True(t, s.Add("favorites", models.MediaItem{ID: 1, Title: "first"}))
	require.False(t, s.Add("favorites", models.MediaItem{ID: 1, Title: "second"}))

	require.Equal(t, 1, s.Count("favorites"))
	item, _ := s.Get("favorites", 1)
	require.Equal(t, "first", item.Title)
}

func TestStore_RemoveAbsent(t *testing.T) {
	s := NewStore()
	_, ok := s.Remove("watchlist", 99)
	require.False(t, ok)
}

func TestStore_CategoriesAreIndependent(t *testing.T) {
	s := NewStore()
	s.Add("favorites", models.MediaItem{ID: 1})
	s.Add("watchlist", models.MediaItem{ID: 1})

	s.Remove("favorites", 1)
	require.True(t, s.Contains("watchlist", 1))
}

func TestStore_SnapshotIsStableAndDetached(t *testing.T) {
	s := NewStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.Add("favorites", models.MediaItem{ID: 3, DateAdded: base.Add(2 * time.Hour)})
	s.Add("favorites", models.MediaItem{ID: 1, DateAdded: base})
	s.Add("favorites", models.MediaItem{ID: 2, DateAdded: base})

	snap := s.Snapshot("favorites")
	require.Len(t, snap, 3)
	// DateAdded order, ties broken by id.
	require.Equal(t, int64(1), snap[0].ID)
	require.Equal(t, int64(2), snap[1].ID)
	require.Equal(t, int64(3), snap[2].ID)

	snap[0].ID = 99
	require.True(t, s.Contains("favorites", 1))
}

func TestStore_SetCategoryReplaces(t *testing.T) {
	s := NewStore()
	s.Add("favorites", models.MediaItem{ID: 1})

	s.SetCategory("favorites", []models.MediaItem{{ID: 2}, {ID: 3}})
	require.False(t, s.Contains("favorites", 1))
	require.Equal(t, 2, s.Count("favorites"))
}

func TestStore_DropAll(t *testing.T) {
	s := NewStore()
	s.Add("favorites", models.MediaItem{ID: 1})
	s.Add("watchlist", models.MediaItem{ID: 2})

	s.DropAll()
	require.Equal(t, 0, s.Count("favorites"))
	require.Equal(t, 0, s.Count("watchlist"))
}
