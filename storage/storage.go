// Package storage provides the persistent record store: one serialized blob
// per collection, loaded and rewritten in full on every mutation.
package storage

import (
	"context"
	"errors"
)

// Collection keys for the persisted blobs.
const (
	KeyInstitutions = "institutions"
	KeyCourses      = "courses"
	KeyUsers        = "users"
	KeySettings     = "settings"
)

var (
	// ErrNotInitialized is returned by Load when the collection has never
	// been written. Repositories seed defaults and write them back.
	ErrNotInitialized = errors.New("collection not initialized")

	// ErrStorageUnavailable is returned when no durable storage medium is
	// accessible in the current execution context.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// RecordStore persists whole collections keyed by name. Save overwrites the
// entire blob; a subsequent Load must never observe a partial write.
type RecordStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Close() error
}
