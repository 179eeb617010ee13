// Package repository implements the entity repositories: typed CRUD over one
// persisted collection blob per entity type. Every mutation is a full
// read-modify-write of the collection under a per-collection mutex, so the
// single-writer assumption holds within the process. Concurrent writers in
// other processes still race last-write-wins on the whole blob; that is a
// documented limitation of the storage layout, not a guarantee.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lernovate/admin-api/storage"
)

var (
	// ErrNotFound is returned when an operation targets a nonexistent id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a create or update would violate
	// email uniqueness.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repositories bundles one repository per entity type. Constructed once at
// startup and injected into handlers.
type Repositories struct {
	Institutions *InstitutionRepository
	Courses      *CourseRepository
	Users        *UserRepository
	Settings     *SettingRepository
}

// New builds all repositories over a shared record store.
func New(store storage.RecordStore) *Repositories {
	return &Repositories{
		Institutions: NewInstitutionRepository(store),
		Courses:      NewCourseRepository(store),
		Users:        NewUserRepository(store),
		Settings:     NewSettingRepository(store),
	}
}

// load fetches and decodes a collection. On first access it seeds the
// collection and writes it back immediately so subsequent loads are stable.
func load[T any](ctx context.Context, store storage.RecordStore, key string, seed func() []T) ([]T, error) {
	blob, err := store.Load(ctx, key)
	if errors.Is(err, storage.ErrNotInitialized) {
		records := seed()
		if err := save(ctx, store, key, records); err != nil {
			return nil, err
		}
		return records, nil
	}
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return records, nil
}

// loadForRead is load with the read-path fallback: when storage is not
// available, readers get the seed data instead of an error.
func loadForRead[T any](ctx context.Context, store storage.RecordStore, key string, seed func() []T) ([]T, error) {
	records, err := load(ctx, store, key, seed)
	if errors.Is(err, storage.ErrStorageUnavailable) {
		return seed(), nil
	}
	return records, err
}

// save encodes and overwrites a collection blob.
func save[T any](ctx context.Context, store storage.RecordStore, key string, records []T) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Save(ctx, key, blob)
}
