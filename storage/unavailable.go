package storage

import "context"

// UnavailableStore stands in when no durable storage medium is configured.
// Every call fails with ErrStorageUnavailable; read paths above fall back to
// seed data instead of crashing.
type UnavailableStore struct{}

// NewUnavailableStore returns the stand-in store.
func NewUnavailableStore() *UnavailableStore {
	return &UnavailableStore{}
}

func (*UnavailableStore) Load(context.Context, string) ([]byte, error) {
	return nil, ErrStorageUnavailable
}

func (*UnavailableStore) Save(context.Context, string, []byte) error {
	return ErrStorageUnavailable
}

func (*UnavailableStore) Close() error {
	return nil
}
