package storage

import (
	"DentalCenter/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage keeps collections as rows of the stored_collection table.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) (*GormStorage, error) {
	if db == nil {
		return nil, errors.New("database is not initialized")
	}
	return &GormStorage{db: db}, nil
}

func (s *GormStorage) Get(ctx context.Context, key string) (string, error) {
	var row models.StoredCollection
	err := s.db.WithContext(ctx).Where("storage_key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return row.Value, nil
}

func (s *GormStorage) Set(ctx context.Context, key, value string) error {
	row := models.StoredCollection{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *GormStorage) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("storage_key = ?", key).Delete(&models.StoredCollection{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *GormStorage) DeleteAll(ctx context.Context, pattern string) error {
	like := strings.ReplaceAll(pattern, "*", "%")
	if err := s.db.WithContext(ctx).Where("storage_key LIKE ?", like).Delete(&models.StoredCollection{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", pattern, err)
	}
	return nil
}
