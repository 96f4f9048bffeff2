package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tiledict/internal/models"
)

// TileStateRepository persists the expanded flag of each board item.
type TileStateRepository struct {
	db *sql.DB
}

// NewTileStateRepository creates a new TileStateRepository with the given database connection
func NewTileStateRepository(db *sql.DB) *TileStateRepository {
	return &TileStateRepository{db: db}
}

// Save upserts the flag of every item.
func (r *TileStateRepository) Save(ctx context.Context, items []models.Item) error {
	now := time.Now()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO tile_states (item_id, expanded, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(item_id) DO UPDATE SET expanded = excluded.expanded, updated_at = excluded.updated_at
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, item := range items {
			if _, err := stmt.ExecContext(ctx, item.ID, item.Expanded, now); err != nil {
				return fmt.Errorf("failed to save tile %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

// Load returns the saved flags keyed by item id.
func (r *TileStateRepository) Load(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT item_id, expanded FROM tile_states")
	if err != nil {
		return nil, fmt.Errorf("failed to query tile states: %w", err)
	}
	defer rows.Close()

	state := make(map[string]bool)
	for rows.Next() {
		var (
			id       string
			expanded bool
		)
		if err := rows.Scan(&id, &expanded); err != nil {
			return nil, fmt.Errorf("failed to scan tile state: %w", err)
		}
		state[id] = expanded
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return state, nil
}

// Clear removes every saved flag.
func (r *TileStateRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM tile_states"); err != nil {
		return fmt.Errorf("failed to clear tile states: %w", err)
	}
	return nil
}
