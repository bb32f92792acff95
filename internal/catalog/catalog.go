// Package catalog holds the category registry: the fixed built-in categories
// plus the user-created ones. The registry is pure in-memory state; persisting
// custom definitions is the engine's job, through the remote store.
package catalog

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/flixvault/flixvault/internal/models"
)

var (
	ErrEmptyName     = errors.New("category name is empty")
	ErrDuplicateName = errors.New("category name already in use")
)

// Built-in category ids, in display and status-priority order.
const (
	Favorites = "favorites"
	Watchlist = "watchlist"
	Finished  = "finished"
	OnHold    = "on-hold"
	Dropped   = "dropped"
)

var builtins = []models.Category{
	{ID: Favorites, Label: "Favorites", Color: "#e0245e", Origin: models.OriginBuiltin},
	{ID: Watchlist, Label: "Watchlist", Color: "#1d9bf0", Origin: models.OriginBuiltin},
	{ID: Finished, Label: "Finished", Color: "#00ba7c", Origin: models.OriginBuiltin},
	{ID: OnHold, Label: "On-Hold", Color: "#ffad1f", Origin: models.OriginBuiltin},
	{ID: Dropped, Label: "Dropped", Color: "#71767b", Origin: models.OriginBuiltin},
}

// Builtins returns the fixed categories in priority order.
func Builtins() []models.Category {
	out := make([]models.Category, len(builtins))
	copy(out, builtins)
	return out
}

// Catalog is the registry of valid category ids. Not safe for concurrent use;
// the owning engine guards it.
type Catalog struct {
	customs []models.Category
}

func New() *Catalog {
	return &Catalog{}
}

// List returns built-ins first in their fixed order, then customs in
// creation order.
func (c *Catalog) List() []models.Category {
	out := make([]models.Category, 0, len(builtins)+len(c.customs))
	out = append(out, builtins...)
	out = append(out, c.customs...)
	return out
}

// Get returns the category with the given id.
func (c *Catalog) Get(id string) (models.Category, bool) {
	for _, b := range builtins {
		if b.ID == id {
			return b, true
		}
	}
	for _, cu := range c.customs {
		if cu.ID == id {
			return cu, true
		}
	}
	return models.Category{}, false
}

// Has reports whether id names a registered category.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// NameTaken reports whether any category, built-in or custom, already uses
// the name (case-insensitive).
func (c *Catalog) NameTaken(name string) bool {
	for _, cat := range c.List() {
		if strings.EqualFold(cat.Label, name) {
			return true
		}
	}
	return false
}

// NewCategory validates name and builds a custom category definition without
// registering it. The id is derived from a normalized form of the name and
// the creation timestamp, with a numeric suffix if that still collides.
func (c *Catalog) NewCategory(name, color string, now time.Time) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrEmptyName
	}
	if c.NameTaken(name) {
		return models.Category{}, ErrDuplicateName
	}

	base := slugify(name) + "-" + strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for n := 1; c.Has(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}

	return models.Category{
		ID:        id,
		Label:     name,
		Color:     color,
		Origin:    models.OriginCustom,
		CreatedAt: now,
	}, nil
}

// Append registers a custom category at the end of the creation order.
func (c *Catalog) Append(cat models.Category) {
	c.customs = append(c.customs, cat)
}

// RemoveCustom unregisters a custom category and returns the removed
// definition. Built-in ids and unknown ids are a no-op.
func (c *Catalog) RemoveCustom(id string) (models.Category, bool) {
	for i, cu := range c.customs {
		if cu.ID == id {
			c.customs = append(c.customs[:i], c.customs[i+1:]...)
			return cu, true
		}
	}
	return models.Category{}, false
}

// Customs returns the custom categories in creation order.
func (c *Catalog) Customs() []models.Category {
	out := make([]models.Category, len(c.customs))
	copy(out, c.customs)
	return out
}

// Reset replaces the custom set, e.g. when hydrating a new session.
func (c *Catalog) Reset(customs []models.Category) {
	c.customs = append(c.customs[:0:0], customs...)
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
