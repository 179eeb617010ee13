package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreLoadBeforeSave(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Load(context.Background(), KeyInstitutions)
	if !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestFileStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	blob := []byte(`[{"id":"1"}]`)
	if err := store.Save(ctx, KeyCourses, blob); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(ctx, KeyCourses)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(blob) {
		t.Fatalf("got %q, want %q", got, blob)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, KeyUsers, []byte(`["old"]`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, KeyUsers, []byte(`["new"]`)); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load(ctx, KeyUsers)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `["new"]` {
		t.Fatalf("got %q, want overwritten value", got)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(context.Background(), KeySettings, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestFileStoreSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Save(ctx, KeyInstitutions, []byte(`["a"]`)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, KeyCourses, []byte(`["b"]`)); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "backups", "2025-01-01")
	if err := store.Snapshot(ctx, dst); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{KeyInstitutions, KeyCourses} {
		data, err := os.ReadFile(filepath.Join(dst, key+".json"))
		if err != nil {
			t.Fatalf("snapshot missing %s: %v", key, err)
		}
		if len(data) == 0 {
			t.Fatalf("snapshot of %s is empty", key)
		}
	}
}

func TestUnavailableStore(t *testing.T) {
	store := NewUnavailableStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, KeyUsers); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Load: expected ErrStorageUnavailable, got %v", err)
	}
	if err := store.Save(ctx, KeyUsers, nil); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("Save: expected ErrStorageUnavailable, got %v", err)
	}
}
