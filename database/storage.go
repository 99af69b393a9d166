package database

import (
	"DentalCenter/config"
	"DentalCenter/storage"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenStorage connects the configured backend. The returned closer releases
// its connections.
func OpenStorage(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (storage.Storage, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewRedisStorage(client)
		if err != nil {
			return nil, nil, err
		}
		return store, closerFunc(func() error {
			LogRedisPool(client, log)
			return client.Close()
		}), nil

	case config.BackendPostgres:
		db, err := InitDB(ctx, cfg.DBURL, cfg.IsDev(), log)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewGormStorage(db)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return store, sqlDB, nil

	case config.BackendMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemoryStorage(), closerFunc(func() error { return nil }), nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
