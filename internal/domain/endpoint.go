package domain

import "context"

// EndpointEntry is a remembered working route for a logical operation.
// At most one entry exists per operation.
type EndpointEntry struct {
	Operation string `db:"operation"`
	Method    string `db:"method"`
	Path      string `db:"path"`
}

// EndpointCacheRepository defines the interface for durable endpoint cache storage
type EndpointCacheRepository interface {
	// Get returns the cached entry for an operation, or nil on a cache miss.
	Get(ctx context.Context, operation string) (*EndpointEntry, error)
	Put(ctx context.Context, entry EndpointEntry) error
	Delete(ctx context.Context, operation string) error
}
