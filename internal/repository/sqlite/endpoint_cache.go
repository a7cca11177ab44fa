package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// EndpointCacheRepository implements domain.EndpointCacheRepository
type EndpointCacheRepository struct {
	db *sqlx.DB
}

// NewEndpointCacheRepository creates a new endpoint cache repository
func NewEndpointCacheRepository(db *sqlx.DB) *EndpointCacheRepository {
	return &EndpointCacheRepository{db: db}
}

// Get returns the remembered route for an operation, or nil on a cache miss
func (r *EndpointCacheRepository) Get(ctx context.Context, operation string) (*domain.EndpointEntry, error) {
	var entry domain.EndpointEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT operation, method, path FROM endpoint_cache WHERE operation = ?", operation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoint cache: %w", err)
	}
	return &entry, nil
}

// Put remembers the working route for an operation, replacing any previous one
func (r *EndpointCacheRepository) Put(ctx context.Context, entry domain.EndpointEntry) error {
	_, err := r.db.ExecContext(ctx, `
		REPLACE INTO endpoint_cache (operation, method, path, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	`, entry.Operation, entry.Method, entry.Path)
	if err != nil {
		return fmt.Errorf("failed to write endpoint cache: %w", err)
	}
	return nil
}

// Delete evicts the remembered route for an operation
func (r *EndpointCacheRepository) Delete(ctx context.Context, operation string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM endpoint_cache WHERE operation = ?", operation)
	if err != nil {
		return fmt.Errorf("failed to evict endpoint cache: %w", err)
	}
	return nil
}
