package models

import "time"

// CategoryOrigin tells whether a category is one of the fixed built-ins or
// was created by the user.
type CategoryOrigin string

const (
	OriginBuiltin CategoryOrigin = "builtin"
	OriginCustom  CategoryOrigin = "custom"
)

// Category is a named bucket that can hold media items. Built-ins exist for
// the lifetime of the registry and can never be renamed or deleted; customs
// are created and deleted by the user.
type Category struct {
	// ID is unique across built-in and custom categories.
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Color  string         `json:"color"`
	Origin CategoryOrigin `json:"origin"`

	// CreatedAt is set for custom categories only.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Builtin reports whether the category is one of the fixed built-ins.
func (c Category) Builtin() bool {
	return c.Origin == OriginBuiltin
}

// Sort preferences accepted by SetSortPreference. The value is stored and
// returned verbatim; rendering layers interpret it.
const (
	SortByDateAdded = "date_added"
	SortByTitle     = "title"
	SortByRating    = "rating"
)
