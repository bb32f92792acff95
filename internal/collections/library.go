package collections

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flixvault/flixvault/internal/catalog"
	"github.com/flixvault/flixvault/internal/logging"
	"github.com/flixvault/flixvault/internal/models"
	"github.com/flixvault/flixvault/internal/remote"
	"github.com/flixvault/flixvault/internal/session"
)

// Library owns the category registry and the working copy of every category
// for the active session, and runs the optimistic mutation protocol against
// the remote store: apply locally, dispatch remotely, undo the local step if
// the remote one fails.
//
// All mutation methods are safe for concurrent use. Mutations on the same
// (category, item) pair are serialized across their remote round-trip.
type Library struct {
	mu      sync.RWMutex
	locks   *keyedMutex
	remote  remote.Store
	log     logging.Logger
	catalog *catalog.Catalog
	store   *Store
	now     func() time.Time
	secret  []byte

	userID    string
	sessionID string
	gen       uint64
	sortPref  string
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used for mutation and session events.
func WithLogger(log logging.Logger) Option {
	return func(l *Library) { l.log = log }
}

// WithClock sets the time source used for DateAdded stamps and category ids.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithTokenSecret sets the key used to verify session tokens passed to
// LoginWithToken.
func WithTokenSecret(secret []byte) Option {
	return func(l *Library) { l.secret = secret }
}

// New creates a Library bound to the given remote store. No session is
// active until Login succeeds.
func New(store remote.Store, opts ...Option) *Library {
	l := &Library{
		locks:   newKeyedMutex(),
		remote:  store,
		log:     logging.NewSlogLogger(slog.Default()),
		catalog: catalog.New(),
		store:   NewStore(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func mutationKey(categoryID string, itemID int64) string {
	return categoryID + "/" + strconv.FormatInt(itemID, 10)
}

// Login starts a session for userID and hydrates the registry, every
// category and the sort preference from the remote store. Any previous
// session's data is discarded first.
func (l *Library) Login(ctx context.Context, userID string) error {
	l.mu.Lock()
	l.userID = userID
	l.sessionID = uuid.NewString()
	sessionID := l.sessionID
	l.gen++
	gen := l.gen
	l.catalog.Reset(nil)
	l.store.DropAll()
	l.sortPref = models.SortByDateAdded
	l.mu.Unlock()

	l.log.Info(ctx, "session started", "user_id", userID, "session_id", sessionID)

	customs, err := l.remote.ListCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("list category definitions: %w", err)
	}

	cats := catalog.Builtins()
	cats = append(cats, customs...)

	items := make(map[string][]models.MediaItem, len(cats))
	for _, cat := range cats {
		members, err := l.remote.Initialize(ctx, userID, cat.ID)
		if err != nil {
			return fmt.Errorf("initialize category %q: %w", cat.ID, err)
		}
		items[cat.ID] = members
	}

	pref, err := l.remote.GetSortPreference(ctx, userID)
	if err != nil {
		return fmt.Errorf("get sort preference: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen != gen {
		// A newer login or logout superseded this hydration.
		return nil
	}
	l.catalog.Reset(customs)
	for id, members := range items {
		l.store.SetCategory(id, members)
	}
	if pref != "" {
		l.sortPref = pref
	}
	return nil
}

// LoginWithToken verifies a signed session token from the identity provider
// and starts a session for the user id it carries.
func (l *Library) LoginWithToken(ctx context.Context, token string) error {
	userID, err := session.UserIDFromToken(token, l.secret)
	if err != nil {
		return fmt.Errorf("verify session token: %w", err)
	}
	return l.Login(ctx, userID)
}

// Logout ends the session and discards all in-memory category data. Further
// mutations fail with ErrAuthRequired until the next Login. Rollbacks of
// mutations still in flight for the old session are dropped.
func (l *Library) Logout(ctx context.Context) {
	l.mu.Lock()
	userID := l.userID
	l.userID = ""
	l.sessionID = ""
	l.gen++
	l.catalog.Reset(nil)
	l.store.DropAll()
	l.sortPref = ""
	l.mu.Unlock()

	if userID != "" {
		l.log.Info(ctx, "session ended", "user_id", userID)
	}
}

// Watch consumes session-change events from the identity provider until the
// channel closes or ctx is done.
func (l *Library) Watch(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !ev.Active {
				l.Logout(ctx)
				continue
			}
			if err := l.Login(ctx, ev.UserID); err != nil {
				l.log.Error(ctx, "session hydration failed", "user_id", ev.UserID, "error", err)
			}
		}
	}
}

// Add inserts the item into the category, stamps DateAdded, and persists the
// addition. Adding an item that is already a member is a true no-op: no
// remote call, no state change, no error. On remote failure the insertion is
// undone before the error is returned.
func (l *Library) Add(ctx context.Context, categoryID string, item models.MediaItem) error {
	unlock := l.locks.lock(mutationKey(categoryID, item.ID))
	defer unlock()

	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return ErrAuthRequired
	}
	if !l.catalog.Has(categoryID) {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	if l.store.Contains(categoryID, item.ID) {
		l.mu.Unlock()
		return nil
	}
	item.DateAdded = l.now().UTC()
	l.store.Add(categoryID, item)
	userID, gen := l.userID, l.gen
	l.mu.Unlock()

	if err := l.remote.AppendItem(ctx, userID, categoryID, item); err != nil {
		l.undoAdd(gen, categoryID, item.ID)
		l.log.Error(ctx, "add rolled back", "category", categoryID, "item", item.ID, "error", err)
		return fmt.Errorf("append item %d to %q: %w", item.ID, categoryID, err)
	}
	return nil
}

// Remove deletes the item from the category and persists the removal.
// Removing an absent item is a no-op. On remote failure the item is put
// back before the error is returned.
func (l *Library) Remove(ctx context.Context, categoryID string, itemID int64) error {
	unlock := l.locks.lock(mutationKey(categoryID, itemID))
	defer unlock()

	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return ErrAuthRequired
	}
	removed, ok := l.store.Remove(categoryID, itemID)
	if !ok {
		l.mu.Unlock()
		return nil
	}
	userID, gen := l.userID, l.gen
	l.mu.Unlock()

	if err := l.remote.RemoveItem(ctx, userID, categoryID, removed); err != nil {
		l.undoRemove(gen, categoryID, removed)
		l.log.Error(ctx, "remove rolled back", "category", categoryID, "item", itemID, "error", err)
		return fmt.Errorf("remove item %d from %q: %w", itemID, categoryID, err)
	}
	return nil
}

// Move takes the item out of one category and adds it to another, as two
// independent mutations. Categories are independent remote documents, so a
// mid-flight failure can leave the item in neither or transiently in both;
// the joined error reports which half failed.
func (l *Library) Move(ctx context.Context, fromID, toID string, item models.MediaItem) error {
	removeErr := l.Remove(ctx, fromID, item.ID)
	addErr := l.Add(ctx, toID, item)
	return errors.Join(removeErr, addErr)
}

// CreateCategory validates the name, registers a new custom category and
// persists its definition. On remote failure the registration is undone.
func (l *Library) CreateCategory(ctx context.Context, name, color string) (models.Category, error) {
	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return models.Category{}, ErrAuthRequired
	}
	cat, err := l.catalog.NewCategory(name, color, l.now().UTC())
	if err != nil {
		l.mu.Unlock()
		return models.Category{}, err
	}
	l.catalog.Append(cat)
	l.store.SetCategory(cat.ID, nil)
	userID, gen := l.userID, l.gen
	l.mu.Unlock()

	if err := l.remote.AppendCategory(ctx, userID, cat); err != nil {
		l.undoCreateCategory(gen, cat.ID)
		l.log.Error(ctx, "create category rolled back", "category", cat.ID, "error", err)
		return models.Category{}, fmt.Errorf("persist category %q: %w", cat.ID, err)
	}
	return cat, nil
}

// DeleteCategory unregisters a custom category and persists the removal.
// Built-in and unknown ids are a no-op. The category's member items are left
// as they are, locally and remotely; only the definition goes away.
// On remote failure the category is reinstated.
func (l *Library) DeleteCategory(ctx context.Context, id string) error {
	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return ErrAuthRequired
	}
	cat, ok := l.catalog.RemoveCustom(id)
	if !ok {
		l.mu.Unlock()
		return nil
	}
	userID, gen := l.userID, l.gen
	l.mu.Unlock()

	if err := l.remote.RemoveCategory(ctx, userID, cat); err != nil {
		l.undoDeleteCategory(gen, cat)
		l.log.Error(ctx, "delete category rolled back", "category", id, "error", err)
		return fmt.Errorf("remove category %q: %w", id, err)
	}
	return nil
}

// SetSortPreference stores the user's sort preference, optimistically like
// every other mutation.
func (l *Library) SetSortPreference(ctx context.Context, pref string) error {
	l.mu.Lock()
	if l.userID == "" {
		l.mu.Unlock()
		return ErrAuthRequired
	}
	prev := l.sortPref
	l.sortPref = pref
	userID, gen := l.userID, l.gen
	l.mu.Unlock()

	if err := l.remote.SetSortPreference(ctx, userID, pref); err != nil {
		l.mu.Lock()
		if l.gen == gen {
			l.sortPref = prev
		}
		l.mu.Unlock()
		l.log.Error(ctx, "sort preference rolled back", "error", err)
		return fmt.Errorf("set sort preference: %w", err)
	}
	return nil
}

// Rollback helpers. Each one re-checks the session generation so a rollback
// arriving after a logout or a fresh login cannot touch the new session's
// state.

func (l *Library) undoAdd(gen uint64, categoryID string, itemID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen {
		l.store.Remove(categoryID, itemID)
	}
}

func (l *Library) undoRemove(gen uint64, categoryID string, item models.MediaItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen {
		l.store.Add(categoryID, item)
	}
}

func (l *Library) undoCreateCategory(gen uint64, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen {
		l.catalog.RemoveCustom(id)
	}
}

func (l *Library) undoDeleteCategory(gen uint64, cat models.Category) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen {
		l.catalog.Append(cat)
	}
}
