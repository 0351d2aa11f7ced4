package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/merchstore/internal/models"
)

// GormBackend stores namespaces in the kv_entries table.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend constructs a GormBackend. The kv_entries table is created by
// database.Migrate.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// Namespace returns the store for name.
func (b *GormBackend) Namespace(name string) Store {
	return &gormStore{db: b.db, namespace: name}
}

type gormStore struct {
	db        *gorm.DB
	namespace string
}

func (s *gormStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.namespace == "" {
		return "", false, ErrEmptyNamespace
	}

	var entry models.KVEntry
	err := s.db.WithContext(ctx).
		First(&entry, "namespace = ? AND key = ?", s.namespace, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	if s.namespace == "" {
		return ErrEmptyNamespace
	}

	entry := models.KVEntry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	if s.namespace == "" {
		return ErrEmptyNamespace
	}
	return s.db.WithContext(ctx).
		Where("namespace = ? AND key = ?", s.namespace, key).
		Delete(&models.KVEntry{}).Error
}
