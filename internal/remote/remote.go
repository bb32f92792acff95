// Package remote defines the persistence contract the collection engine
// speaks to the durable document store. One document per (user, category)
// holds the member items; a second set of documents holds the user's custom
// category definitions and sort preference.
package remote

import (
	"context"

	"github.com/flixvault/flixvault/internal/models"
)

// Store is the narrow adapter contract. Implementations must make AppendItem
// an idempotent union-add and treat a missing document as empty.
type Store interface {
	// Initialize returns the persisted item set for one category, empty if
	// nothing was ever stored. Called once per category at session start.
	Initialize(ctx context.Context, userID, categoryID string) ([]models.MediaItem, error)

	// AppendItem adds one item by value. Appending an item that is already
	// a member is a no-op.
	AppendItem(ctx context.Context, userID, categoryID string, item models.MediaItem) error

	// RemoveItem removes one item by value. The caller supplies the exact
	// previously stored value.
	RemoveItem(ctx context.Context, userID, categoryID string, item models.MediaItem) error

	// ListCategories returns the user's custom category definitions.
	ListCategories(ctx context.Context, userID string) ([]models.Category, error)

	AppendCategory(ctx context.Context, userID string, cat models.Category) error
	RemoveCategory(ctx context.Context, userID string, cat models.Category) error

	GetSortPreference(ctx context.Context, userID string) (string, error)
	SetSortPreference(ctx context.Context, userID, pref string) error

	Close() error
}
