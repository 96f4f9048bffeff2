package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/tiledict/internal/dict"
	"github.com/desertthunder/tiledict/internal/models"
	"github.com/desertthunder/tiledict/internal/shared"
)

var _ dict.Source = (*WordRepository)(nil)

const wordColumns = "id, bare, accented, usage_en, type, level"

// WordRepository stores dictionary words.
type WordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository with the given database connection
func NewWordRepository(db *sql.DB) *WordRepository {
	return &WordRepository{db: db}
}

// Create inserts a word. A zero ID lets SQLite assign the next one, which is written back to w.
func (r *WordRepository) Create(ctx context.Context, w *models.Word) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	id := sql.NullInt64{Int64: int64(w.ID), Valid: w.ID != 0}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO words (`+wordColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id, w.Bare, w.Accented, w.UsageEN, w.Type, w.Level,
	)
	if err != nil {
		return fmt.Errorf("failed to insert word: %w", err)
	}

	if w.ID == 0 {
		newID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted id: %w", err)
		}
		w.ID = int(newID)
	}
	return nil
}

// ReplaceAll swaps the whole store for words in a single transaction and returns how many were written.
func (r *WordRepository) ReplaceAll(ctx context.Context, words []models.Word) (int, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM words"); err != nil {
			return fmt.Errorf("failed to clear words: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (`+wordColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, w := range words {
			if err := w.Validate(); err != nil {
				return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
			}
			id := sql.NullInt64{Int64: int64(w.ID), Valid: w.ID != 0}
			if _, err := stmt.ExecContext(ctx, id, w.Bare, w.Accented, w.UsageEN, w.Type, w.Level); err != nil {
				return fmt.Errorf("failed to insert word %d: %w", w.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

// Get retrieves a word by ID.
func (r *WordRepository) Get(ctx context.Context, id int) (*models.Word, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id)

	var w models.Word
	err := row.Scan(&w.ID, &w.Bare, &w.Accented, &w.UsageEN, &w.Type, &w.Level)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrWordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan word: %w", err)
	}
	return &w, nil
}

// Delete removes a word by ID.
func (r *WordRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrWordNotFound, id)
	}
	return nil
}

// List returns every word ordered by bare form.
func (r *WordRepository) List(ctx context.Context) ([]models.Word, error) {
	return r.query(ctx, `SELECT `+wordColumns+` FROM words ORDER BY bare ASC, id ASC`)
}

// Search returns words whose bare form contains query, ordered by bare form. Matching is case-sensitive.
func (r *WordRepository) Search(ctx context.Context, query string) ([]models.Word, error) {
	if query == "" {
		return r.List(ctx)
	}
	return r.query(ctx, `SELECT `+wordColumns+` FROM words WHERE instr(bare, ?) > 0 ORDER BY bare ASC, id ASC`, query)
}

// Count returns the number of stored words.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

// Words implements [dict.Source].
func (r *WordRepository) Words(ctx context.Context) ([]models.Word, error) {
	return r.List(ctx)
}

func (r *WordRepository) query(ctx context.Context, query string, args ...any) ([]models.Word, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	words := []models.Word{}
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Bare, &w.Accented, &w.UsageEN, &w.Type, &w.Level); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return words, nil
}
