package repository

import (
	"context"
	"errors"

	"clinic-portal/internal/model"
	"clinic-portal/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRepository persists key-value entries per device
type StorageRepository interface {
	Get(ctx context.Context, deviceID, key string) (string, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Remove(ctx context.Context, deviceID, key string) error
	Keys(ctx context.Context, deviceID string) ([]string, error)
	// Scoped returns a storage.Store bound to one device
	Scoped(deviceID string) storage.Store
}

type storageRepo struct {
	db *gorm.DB
}

func NewStorageRepo(db *gorm.DB) StorageRepository {
	return &storageRepo{db}
}

func (r *storageRepo) Get(ctx context.Context, deviceID, key string) (string, error) {
	var entry model.StorageEntry
	err := r.db.WithContext(ctx).Where("device_id = ? AND key = ?", deviceID, key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (r *storageRepo) Set(ctx context.Context, deviceID, key, value string) error {
	entry := model.StorageEntry{DeviceID: deviceID, Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *storageRepo) Remove(ctx context.Context, deviceID, key string) error {
	return r.db.WithContext(ctx).Where("device_id = ? AND key = ?", deviceID, key).Delete(&model.StorageEntry{}).Error
}

func (r *storageRepo) Keys(ctx context.Context, deviceID string) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&model.StorageEntry{}).
		Where("device_id = ?", deviceID).
		Order("key ASC").
		Pluck("key", &keys).Error
	return keys, err
}

func (r *storageRepo) Scoped(deviceID string) storage.Store {
	return deviceStore{repo: r, deviceID: deviceID}
}

type deviceStore struct {
	repo     *storageRepo
	deviceID string
}

func (s deviceStore) Get(ctx context.Context, key string) (string, error) {
	return s.repo.Get(ctx, s.deviceID, key)
}

func (s deviceStore) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, s.deviceID, key, value)
}

func (s deviceStore) Remove(ctx context.Context, key string) error {
	return s.repo.Remove(ctx, s.deviceID, key)
}
