// Package collections implements the categorized collection engine: the
// in-memory working copy of every category, the optimistic mutation protocol
// that keeps it convergent with the remote store, and the read-only status
// queries derived from it.
package collections

import (
	"sort"

	"github.com/flixvault/flixvault/internal/models"
)

// Store is the per-category membership state. Each category holds a set of
// items keyed by item id; insertion order is irrelevant. Not safe for
// concurrent use on its own — the Library guards it.
type Store struct {
	lists map[string]map[int64]models.MediaItem
}

func NewStore() *Store {
	return &Store{lists: make(map[string]map[int64]models.MediaItem)}
}

// Contains reports whether the category holds an item with the given id.
func (s *Store) Contains(categoryID string, itemID int64) bool {
	_, ok := s.lists[categoryID][itemID]
	return ok
}

// Get returns the stored value for an item id.
func (s *Store) Get(categoryID string, itemID int64) (models.MediaItem, bool) {
	item, ok := s.lists[categoryID][itemID]
	return item, ok
}

// Add inserts the item as given and reports whether membership changed.
// An item with the same id already present leaves the set untouched.
func (s *Store) Add(categoryID string, item models.MediaItem) bool {
	list, ok := s.lists[categoryID]
	if !ok {
		list = make(map[int64]models.MediaItem)
		s.lists[categoryID] = list
	}
	if _, exists := list[item.ID]; exists {
		return false
	}
	list[item.ID] = item
	return true
}

// Remove deletes the item and returns the removed value, which the caller
// needs for rollback and for remote removal by value. Absent ids are a no-op.
func (s *Store) Remove(categoryID string, itemID int64) (models.MediaItem, bool) {
	item, ok := s.lists[categoryID][itemID]
	if !ok {
		return models.MediaItem{}, false
	}
	delete(s.lists[categoryID], itemID)
	return item, true
}

// SetCategory replaces one category's membership, e.g. when hydrating from
// the remote store at session start.
func (s *Store) SetCategory(categoryID string, items []models.MediaItem) {
	list := make(map[int64]models.MediaItem, len(items))
	for _, item := range items {
		list[item.ID] = item
	}
	s.lists[categoryID] = list
}

// Snapshot returns a read-only copy of one category, ordered by DateAdded
// then id so renders are stable.
func (s *Store) Snapshot(categoryID string) []models.MediaItem {
	list := s.lists[categoryID]
	out := make([]models.MediaItem, 0, len(list))
	for _, item := range list {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateAdded.Equal(out[j].DateAdded) {
			return out[i].DateAdded.Before(out[j].DateAdded)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the cardinality of one category.
func (s *Store) Count(categoryID string) int {
	return len(s.lists[categoryID])
}

// DropAll discards every category, e.g. when the session ends.
func (s *Store) DropAll() {
	s.lists = make(map[string]map[int64]models.MediaItem)
}
