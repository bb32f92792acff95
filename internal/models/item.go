// Package models defines the record types shared between the collection
// engine and the remote persistence layer.
package models

import "time"

// MediaKind discriminates the two catalog entry types.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// MediaItem is a catalog entry as stored inside a category. The engine only
// inspects ID and DateAdded; every other field is opaque payload carried for
// the presentation layer and persisted by value.
type MediaItem struct {
	// ID is stable within the catalog the item came from, and unique
	// within any single category.
	ID int64 `json:"id"`

	Kind MediaKind `json:"media_kind"`

	// DateAdded is assigned by the engine at insertion time, never by the
	// caller.
	DateAdded time.Time `json:"date_added,omitempty"`

	Title      string  `json:"title,omitempty"`
	PosterPath string  `json:"poster_path,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Year       int     `json:"year,omitempty"`
}
