package repository

import (
	"context"
	"sync"
	"time"

	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/storage"
)

// SettingRepository owns the "settings" collection blob.
type SettingRepository struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// NewSettingRepository creates the repository.
func NewSettingRepository(store storage.RecordStore) *SettingRepository {
	return &SettingRepository{store: store}
}

// List returns all settings.
func (r *SettingRepository) List(ctx context.Context) ([]model.Setting, error) {
	return loadForRead(ctx, r.store, storage.KeySettings, seedSettings)
}

// Get returns one setting by key, or ErrNotFound.
func (r *SettingRepository) Get(ctx context.Context, key string) (model.Setting, error) {
	records, err := r.List(ctx)
	if err != nil {
		return model.Setting{}, err
	}
	for _, setting := range records {
		if setting.Key == key {
			return setting, nil
		}
	}
	return model.Setting{}, ErrNotFound
}

// Update changes the value (and optionally description) of an existing
// setting, or returns ErrNotFound.
func (r *SettingRepository) Update(ctx context.Context, key, value, description string) (model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeySettings, seedSettings)
	if err != nil {
		return model.Setting{}, err
	}

	for i := range records {
		if records[i].Key != key {
			continue
		}
		records[i].Value = value
		if description != "" {
			records[i].Description = description
		}
		records[i].UpdatedAt = time.Now().UTC()
		if err := save(ctx, r.store, storage.KeySettings, records); err != nil {
			return model.Setting{}, err
		}
		return records[i], nil
	}
	return model.Setting{}, ErrNotFound
}

// UpdateMany changes several setting values in one write, the way the admin
// console saves a whole settings form. Unknown keys fail the batch before
// anything is persisted.
func (r *SettingRepository) UpdateMany(ctx context.Context, values map[string]string) ([]model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeySettings, seedSettings)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]int, len(records))
	for i, setting := range records {
		byKey[setting.Key] = i
	}
	for key := range values {
		if _, ok := byKey[key]; !ok {
			return nil, ErrNotFound
		}
	}

	now := time.Now().UTC()
	for key, value := range values {
		i := byKey[key]
		records[i].Value = value
		records[i].UpdatedAt = now
	}

	if err := save(ctx, r.store, storage.KeySettings, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert writes a setting, creating it when absent. Used by the stats
// aggregation job.
func (r *SettingRepository) Upsert(ctx context.Context, setting model.Setting) (model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeySettings, seedSettings)
	if err != nil {
		return model.Setting{}, err
	}

	setting.UpdatedAt = time.Now().UTC()
	for i := range records {
		if records[i].Key == setting.Key {
			records[i] = setting
			if err := save(ctx, r.store, storage.KeySettings, records); err != nil {
				return model.Setting{}, err
			}
			return setting, nil
		}
	}

	records = append(records, setting)
	if err := save(ctx, r.store, storage.KeySettings, records); err != nil {
		return model.Setting{}, err
	}
	return setting, nil
}

// Delete removes a setting by key, or returns ErrNotFound.
func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeySettings, seedSettings)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].Key == key {
			records = append(records[:i], records[i+1:]...)
			return save(ctx, r.store, storage.KeySettings, records)
		}
	}
	return ErrNotFound
}
