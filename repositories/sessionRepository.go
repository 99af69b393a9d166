package repositories

import (
	"DentalCenter/models"
	"DentalCenter/storage"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// SessionRepository mirrors the most recently authenticated user under
// AuthUserStorageKey.
type SessionRepository struct {
	store  storage.Storage
	logger *zap.Logger
	mu     sync.Mutex
}

func NewSessionRepository(store storage.Storage, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{store: store, logger: logger}
}

// Get returns nil when no session is stored. A malformed value is removed.
func (r *SessionRepository) Get(ctx context.Context) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(ctx)
}

func (r *SessionRepository) get(ctx context.Context) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	raw, err := r.store.Get(ctx, AuthUserStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil || !user.Valid() {
		r.logger.Warn("stored session is malformed, removing it")
		if err := r.store.Delete(ctx, AuthUserStorageKey); err != nil {
			r.logger.Error("failed to remove malformed session", zap.Error(err))
		}
		return nil, nil
	}
	return &user, nil
}

func (r *SessionRepository) Save(ctx context.Context, user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	persistValue(ctx, r.store, r.logger, AuthUserStorageKey, user)
}

// ClearFor removes the stored session only when it belongs to userID.
func (r *SessionRepository) ClearFor(ctx context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.get(ctx)
	if err != nil {
		r.logger.Error("failed to read session before clearing it", zap.Error(err))
		return
	}
	if current == nil || current.ID != userID {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
	defer cancel()
	if err := r.store.Delete(ctx, AuthUserStorageKey); err != nil {
		r.logger.Error("failed to clear session", zap.String("key", AuthUserStorageKey), zap.Error(err))
	}
}
