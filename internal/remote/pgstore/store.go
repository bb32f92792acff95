// Package pgstore implements the remote persistence contract over
// PostgreSQL, for deployments where the document store is shared between
// devices. Same document model as sqlitestore: one row per stored item,
// absence of rows is the empty document.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/flixvault/flixvault/internal/dbx"
	"github.com/flixvault/flixvault/internal/models"
	"github.com/flixvault/flixvault/internal/remote/pgstore/migrations"
)

// Store is the Postgres-backed remote.Store.
type Store struct {
	db *sql.DB
}

// New opens the database through pgx's database/sql driver and runs
// migrations.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
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

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Initialize(ctx context.Context, userID, categoryID string) ([]models.MediaItem, error) {
	query := `SELECT payload FROM category_items WHERE user_id=$1 AND category_id=$2`
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

func (s *Store) AppendItem(ctx context.Context, userID, categoryID string, item models.MediaItem) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode item payload: %w", err)
	}

	query := `INSERT INTO category_items (user_id, category_id, item_id, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, category_id, item_id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, categoryID, item.ID, payload); err != nil {
		return fmt.Errorf("failed to append item: %w", err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, userID, categoryID string, item models.MediaItem) error {
	query := `DELETE FROM category_items WHERE user_id=$1 AND category_id=$2 AND item_id=$3`
	if _, err := s.db.ExecContext(ctx, query, userID, categoryID, item.ID); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]models.Category, error) {
	query := `SELECT id, label, color, created_at FROM custom_categories
		WHERE user_id=$1 ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", err)
	}
	defer rows.Close()

	var result []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Label, &cat.Color, &cat.CreatedAt); err != nil {
			return nil, err
		}
		cat.Origin = models.OriginCustom
		result = append(result, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) AppendCategory(ctx context.Context, userID string, cat models.Category) error {
	query := `INSERT INTO custom_categories (user_id, id, label, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, id) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, userID, cat.ID, cat.Label, cat.Color, cat.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to append category: %w", err)
	}
	return nil
}

func (s *Store) RemoveCategory(ctx context.Context, userID string, cat models.Category) error {
	query := `DELETE FROM custom_categories WHERE user_id=$1 AND id=$2`
	if _, err := s.db.ExecContext(ctx, query, userID, cat.ID); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	return nil
}

func (s *Store) GetSortPreference(ctx context.Context, userID string) (string, error) {
	query := `SELECT preference FROM sort_preferences WHERE user_id=$1`
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

func (s *Store) SetSortPreference(ctx context.Context, userID, pref string) error {
	query := `INSERT INTO sort_preferences (user_id, preference) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET preference = EXCLUDED.preference`
	if _, err := s.db.ExecContext(ctx, query, userID, pref); err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// Purge deletes everything stored for one user, in a single transaction.
func (s *Store) Purge(ctx context.Context, userID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, query := range []string{
			`DELETE FROM category_items WHERE user_id=$1`,
			`DELETE FROM custom_categories WHERE user_id=$1`,
			`DELETE FROM sort_preferences WHERE user_id=$1`,
		} {
			if _, err := tx.ExecContext(ctx, query, userID); err != nil {
				return err
			}
		}
		return nil
	})
}
