package repositories

import (
	"DentalCenter/storage"
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	PatientsStorageKey  = "dental-center-patients"
	IncidentsStorageKey = "dental-center-incidents"
	AuthUserStorageKey  = "dental-center-auth-user"

	// StorageKeyPattern matches every key this application owns.
	StorageKeyPattern = "dental-center-*"

	storageTimeout = 5 * time.Second
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)

// loadCollection reads a JSON array from key. Elements that fail to decode are
// skipped and logged. A missing, unreadable or non-array value is replaced by
// seed, which is written back.
func loadCollection[T any](ctx context.Context, store storage.Storage, logger *zap.Logger, key string, seed []T) []T {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	raw, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to read stored collection, using seed data", zap.String("key", key), zap.Error(err))
	} else if raw != "" {
		if items, ok := decodeCollection[T](logger, key, raw); ok {
			return items
		}
		logger.Warn("stored collection is malformed, using seed data", zap.String("key", key))
	}

	items := append([]T{}, seed...)
	persistCollection(ctx, store, logger, key, items)
	return items
}

func decodeCollection[T any](logger *zap.Logger, key, raw string) ([]T, bool) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil || elements == nil {
		return nil, false
	}

	items := make([]T, 0, len(elements))
	for i, element := range elements {
		var item T
		if string(element) == "null" {
			logger.Warn("skipping null stored record", zap.String("key", key), zap.Int("index", i))
			continue
		}
		if err := json.Unmarshal(element, &item); err != nil {
			logger.Warn("skipping malformed stored record",
				zap.String("key", key),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, true
}

// persistCollection rewrites the whole collection. Failures are logged and
// swallowed; the in-memory state stays authoritative.
func persistCollection[T any](ctx context.Context, store storage.Storage, logger *zap.Logger, key string, items []T) {
	persistValue(ctx, store, logger, key, items)
}

func persistValue(ctx context.Context, store storage.Storage, logger *zap.Logger, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
	defer cancel()
	if err := store.Set(ctx, key, string(payload)); err != nil {
		logger.Error("failed to persist value", zap.String("key", key), zap.Error(err))
	}
}
