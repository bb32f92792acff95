// Package sqlitestore implements the remote persistence contract over a
// SQLite database. Each (user, category) document is the set of payload rows
// keyed by item id; a missing document is simply the empty set.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/flixvault/flixvault/internal/dbx"
	"github.com/flixvault/flixvault/internal/models"
	"github.com/flixvault/flixvault/internal/remote/sqlitestore/migrations"
)

// Store is the SQLite-backed remote.Store.
type Store struct {
	db *sql.DB
}

// New opens the database and runs migrations.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize returns the persisted item set for one category; empty when
// nothing was ever stored.
func (s *Store) Initialize(ctx context.Context, userID, categoryID string) ([]models.MediaItem, error) {
	query := `SELECT payload FROM category_items WHERE user_id=? AND category_id=?`
	rows, err := s.db.QueryContext(ctx, query, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []models.MediaItem
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var item models.MediaItem
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("failed to decode item payload: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AppendItem stores one item by value. Appending an existing member is a
// no-op (union-add).
func (s *Store) AppendItem(ctx context.Context, userID, categoryID string, item models.MediaItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode item payload: %w", err)
	}

	query := `INSERT INTO category_items (user_id, category_id, item_id, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, category_id, item_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, categoryID, item.ID, payload); err != nil {
		return fmt.Errorf("failed to append item: %w", err)
	}
	return nil
}

// RemoveItem deletes one item. Removing an absent item is a no-op.
func (s *Store) RemoveItem(ctx context.Context, userID, categoryID string, item models.MediaItem) error {
	query := `DELETE FROM category_items WHERE user_id=? AND category_id=? AND item_id=?`
	if _, err := s.db.ExecContext(ctx, query, userID, categoryID, item.ID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

// ListCategories returns the user's custom category definitions in creation
// order.
func (s *Store) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	query := `SELECT id, label, color, created_at FROM custom_categories
		WHERE user_id=? ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var cat models.Category
		var createdAt string
		if err := rows.Scan(&cat.ID, &cat.Label, &cat.Color, &createdAt); err != nil {
			return nil, err
		}
		cat.Origin = models.OriginCustom
		if cat.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		result = append(result, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AppendCategory stores one custom category definition.
func (s *Store) AppendCategory(ctx context.Context, userID string, cat models.Category) error {
	query := `INSERT INTO custom_categories (user_id, id, label, color, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, id) DO NOTHING`
	createdAt := cat.CreatedAt.UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, userID, cat.ID, cat.Label, cat.Color, createdAt); err != nil {
		return fmt.Errorf("failed to append category: %w", err)
	}
	return nil
}

// RemoveCategory deletes one custom category definition. Member items stay.
func (s *Store) RemoveCategory(ctx context.Context, userID string, cat models.Category) error {
	query := `DELETE FROM custom_categories WHERE user_id=? AND id=?`
	if _, err := s.db.ExecContext(ctx, query, userID, cat.ID); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	return nil
}

// GetSortPreference returns the stored preference, or "" when none is set.
func (s *Store) GetSortPreference(ctx context.Context, userID string) (string, error) {
	query := `SELECT preference FROM sort_preferences WHERE user_id=?`
	var pref string
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&pref)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to select preference: %w", err)
	}
	return pref, nil
}

// SetSortPreference upserts the preference.
func (s *Store) SetSortPreference(ctx context.Context, userID, pref string) error {
	query := `INSERT INTO sort_preferences (user_id, preference) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET preference = excluded.preference`
	if _, err := s.db.ExecContext(ctx, query, userID, pref); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// Purge deletes everything stored for one user, in a single transaction.
func (s *Store) Purge(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, query := range []string{
			`DELETE FROM category_items WHERE user_id=?`,
			`DELETE FROM custom_categories WHERE user_id=?`,
			`DELETE FROM sort_preferences WHERE user_id=?`,
		} {
			if _, err := tx.ExecContext(ctx, query, userID); err != nil {
				return err
			}
		}
		return nil
	})
}
