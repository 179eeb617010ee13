package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/storage"
)

func newTestStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestInstitutionListSeedsOnFirstAccess(t *testing.T) {
	store := newTestStore(t)
	repo := NewInstitutionRepository(store)
	ctx := context.Background()

	institutions, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(institutions) != 3 {
		t.Fatalf("expected 3 seeded institutions, got %d", len(institutions))
	}

	// The seed must have been written back so it is stable across loads.
	if _, err := store.Load(ctx, storage.KeyInstitutions); err != nil {
		t.Fatalf("seed was not persisted: %v", err)
	}
}

func TestInstitutionCreate(t *testing.T) {
	repo := NewInstitutionRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Institution{
		Name:    "Lalitpur Model School",
		Email:   "admin@lms.edu.np",
		Address: "Patan, Lalitpur",
	})
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if created.LogoURL != model.DefaultInstitutionLogo {
		t.Errorf("expected default logo %q, got %q", model.DefaultInstitutionLogo, created.LogoURL)
	}

	// New records go to the front of the list.
	institutions, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(institutions) != 4 {
		t.Fatalf("expected 4 institutions, got %d", len(institutions))
	}
	if institutions[0].ID != created.ID {
		t.Error("expected the new institution first")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Lalitpur Model School" {
		t.Errorf("got name %q", got.Name)
	}
}

func TestInstitutionCreateKeepsExplicitLogo(t *testing.T) {
	repo := NewInstitutionRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), model.Institution{
		Name:    "Branded School",
		Email:   "hello@branded.edu",
		Address: "Kathmandu",
		LogoURL: "https://cdn.branded.edu/logo.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.LogoURL != "https://cdn.branded.edu/logo.png" {
		t.Errorf("explicit logo was replaced: %q", created.LogoURL)
	}
}

func TestInstitutionEmailUniqueness(t *testing.T) {
	repo := NewInstitutionRepository(newTestStore(t))
	ctx := context.Background()

	// Seed contains admin@kps.edu.np; a differently-cased copy must collide.
	_, err := repo.Create(ctx, model.Institution{
		Name:    "Impostor School",
		Email:   "ADMIN@KPS.EDU.NP",
		Address: "Somewhere",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	exists, err := repo.EmailExists(ctx, "Admin@Kps.Edu.Np", "")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("expected case-insensitive match")
	}

	// A record keeping its own email on update is not a duplicate.
	exists, err = repo.EmailExists(ctx, "admin@kps.edu.np", "1")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("record's own email should not count as taken")
	}
}

func TestInstitutionUpdatePartial(t *testing.T) {
	repo := NewInstitutionRepository(newTestStore(t))
	ctx := context.Background()

	before, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}

	phone := "9811111111"
	updated, err := repo.Update(ctx, "1", model.InstitutionPatch{Phone: &phone})
	if err != nil {
		t.Fatal(err)
	}

	if updated.Phone != phone {
		t.Errorf("phone not updated: %q", updated.Phone)
	}
	if updated.Name != before.Name || updated.Email != before.Email || updated.Address != before.Address {
		t.Error("untouched fields changed")
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Error("creation timestamp changed on update")
	}
}

func TestInstitutionUpdateDuplicateEmail(t *testing.T) {
	repo := NewInstitutionRepository(newTestStore(t))

	email := "info@pvc.edu.np" // belongs to seed institution 2
	_, err := repo.Update(context.Background(), "1", model.InstitutionPatch{Email: &email})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestInstitutionDelete(t *testing.T) {
	repo := NewInstitutionRepository(newTestStore(t))
	ctx := context.Background()

	if err := repo.Delete(ctx, "2"); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.GetByID(ctx, "2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again reports not found and leaves the rest alone.
	if err := repo.Delete(ctx, "2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	institutions, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(institutions) != 2 {
		t.Fatalf("expected 2 institutions left, got %d", len(institutions))
	}
}

func TestInstitutionReadsFallBackWhenStorageUnavailable(t *testing.T) {
	repo := NewInstitutionRepository(storage.NewUnavailableStore())
	ctx := context.Background()

	institutions, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("reads should fall back to seed data: %v", err)
	}
	if len(institutions) != 3 {
		t.Fatalf("expected seed data, got %d records", len(institutions))
	}

	_, err = repo.Create(ctx, model.Institution{
		Name:    "Doomed School",
		Email:   "doomed@example.com",
		Address: "Nowhere",
	})
	if !errors.Is(err, storage.ErrStorageUnavailable) {
		t.Fatalf("writes must surface ErrStorageUnavailable, got %v", err)
	}
}
