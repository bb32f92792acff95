package collections

import "github.com/flixvault/flixvault/internal/models"

// Read-only queries over the working copy. All of them consult the registry,
// so a deleted custom category's members stop being visible without being
// destroyed.

// Contains reports whether the category currently holds the item.
func (l *Library) Contains(categoryID string, itemID int64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Contains(categoryID, itemID)
}

// Items returns a stable-ordered copy of one category's members.
func (l *Library) Items(categoryID string) []models.MediaItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Snapshot(categoryID)
}

// StatusOf returns the first category holding the item: built-ins in their
// fixed priority order, then customs in creation order. Nothing prevents an
// item from being a member of several categories, so callers must not assume
// exclusivity.
func (l *Library) StatusOf(itemID int64) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, cat := range l.catalog.List() {
		if l.store.Contains(cat.ID, itemID) {
			return cat.ID, true
		}
	}
	return "", false
}

// TotalItems sums cardinalities across every registered category.
func (l *Library) TotalItems() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := 0
	for _, cat := range l.catalog.List() {
		total += l.store.Count(cat.ID)
	}
	return total
}

// Categories lists built-ins first, then customs in creation order.
func (l *Library) Categories() []models.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog.List()
}

// SortPreference returns the active session's sort preference.
func (l *Library) SortPreference() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sortPref
}

// Authenticated reports whether a session is active.
func (l *Library) Authenticated() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.userID != ""
}

// UserID returns the active session's user id, "" when logged out.
func (l *Library) UserID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.userID
}
