package settings

import "context"

// Repository describes persistence of key/value settings. Values are kept in
// their stored text form; coercion happens above this layer.
type Repository interface {
	// GetAll returns every stored setting. An empty store yields an empty map.
	GetAll(ctx context.Context) (map[string]string, error)

	// Upsert inserts key or replaces its value.
	Upsert(ctx context.Context, key, value string) error
}
