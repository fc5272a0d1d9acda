package domain

import (
	"context"
	"errors"
)

// ErrKeyNotFound is the single absence signal storage adapters may return.
// Typed repositories translate it into empty defaults; services never see it.
var ErrKeyNotFound = errors.New("key not found")

// Store is the flat key-value port every entity is persisted through. Values
// are JSON strings; key conventions live in the repository layer.
type Store interface {
	// Get returns the value under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all keys with the given prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
