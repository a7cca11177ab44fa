package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StateRepository implements domain.StateRepository over a key/value table
type StateRepository struct {
	db *sqlx.DB
}

// NewStateRepository creates a new local state repository
func NewStateRepository(db *sqlx.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get returns the stored value for a key, or "" when the key is absent
func (r *StateRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value,
		"SELECT value FROM local_state WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under a key, replacing any previous one
func (r *StateRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		REPLACE INTO local_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

// Delete removes a key from the store
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM local_state WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}
