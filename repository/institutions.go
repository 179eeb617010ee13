package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/storage"
)

// InstitutionRepository owns the "institutions" collection blob.
type InstitutionRepository struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// NewInstitutionRepository creates the repository.
func NewInstitutionRepository(store storage.RecordStore) *InstitutionRepository {
	return &InstitutionRepository{store: store}
}

// List returns all institutions, newest first.
func (r *InstitutionRepository) List(ctx context.Context) ([]model.Institution, error) {
	return loadForRead(ctx, r.store, storage.KeyInstitutions, seedInstitutions)
}

// GetByID returns one institution, or ErrNotFound.
func (r *InstitutionRepository) GetByID(ctx context.Context, id string) (model.Institution, error) {
	records, err := r.List(ctx)
	if err != nil {
		return model.Institution{}, err
	}
	for _, inst := range records {
		if inst.ID == id {
			return inst, nil
		}
	}
	return model.Institution{}, ErrNotFound
}

// EmailExists reports whether email is already taken, case-insensitively.
// excludeID lets an update keep the record's own email.
func (r *InstitutionRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	records, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	return institutionEmailTaken(records, email, excludeID), nil
}

func institutionEmailTaken(records []model.Institution, email, excludeID string) bool {
	for _, inst := range records {
		if strings.EqualFold(inst.Email, email) && inst.ID != excludeID {
			return true
		}
	}
	return false
}

// Create assigns an id and creation timestamp, applies the logo default,
// prepends the record and persists the collection.
func (r *InstitutionRepository) Create(ctx context.Context, inst model.Institution) (model.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeyInstitutions, seedInstitutions)
	if err != nil {
		return model.Institution{}, err
	}

	if institutionEmailTaken(records, inst.Email, "") {
		return model.Institution{}, ErrDuplicateEmail
	}

	inst.ID = uuid.NewString()
	inst.CreatedAt = time.Now().UTC()
	if inst.LogoURL == "" {
		inst.LogoURL = model.DefaultInstitutionLogo
	}

	records = append([]model.Institution{inst}, records...)
	if err := save(ctx, r.store, storage.KeyInstitutions, records); err != nil {
		return model.Institution{}, err
	}
	return inst, nil
}

// Update merges the patch over the existing record and persists. Id and
// creation timestamp are immutable.
func (r *InstitutionRepository) Update(ctx context.Context, id string, patch model.InstitutionPatch) (model.Institution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeyInstitutions, seedInstitutions)
	if err != nil {
		return model.Institution{}, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		if patch.Email != nil && institutionEmailTaken(records, *patch.Email, id) {
			return model.Institution{}, ErrDuplicateEmail
		}
		patch.Apply(&records[i])
		if err := save(ctx, r.store, storage.KeyInstitutions, records); err != nil {
			return model.Institution{}, err
		}
		return records[i], nil
	}
	return model.Institution{}, ErrNotFound
}

// Delete removes the record by id, or returns ErrNotFound leaving the
// collection unchanged.
func (r *InstitutionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeyInstitutions, seedInstitutions)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return save(ctx, r.store, storage.KeyInstitutions, records)
		}
	}
	return ErrNotFound
}
