// Package storage is the durable key/value layer the entity stores mirror
// their collections into. Values are whole serialized collections.
package storage

import "context"

// Storage reads and writes serialized collections by key.
//
// Get returns "" with a nil error when the key does not exist. DeleteAll
// removes every key matching a glob pattern such as "dental-center-*".
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, pattern string) error
}

var (
	_ Storage = (*RedisStorage)(nil)
	_ Storage = (*GormStorage)(nil)
	_ Storage = (*MemoryStorage)(nil)
)
