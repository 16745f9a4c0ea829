// Package settings persists the key-value collection that holds the
// active-account pointer and the settings blob.
package settings

import "context"

// Well-known keys.
const (
	KeyCurrentAccount = "currentAccountId"
	KeySettings       = "settings"
)

// Repository is key-value storage for scalar settings.
type Repository interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set upserts a single key.
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Count(ctx context.Context) (int, error)
}
