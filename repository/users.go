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

// userRecord is the persisted shape of a user. model.User hides the password
// hash from API responses with json:"-", so the stored blob needs its own
// field or the hash would be stripped on every write-back and logins would
// break after the first save.
type userRecord struct {
	model.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

func toUserRecords(users []model.User) []userRecord {
	records := make([]userRecord, len(users))
	for i, user := range users {
		records[i] = userRecord{User: user, PasswordHash: user.PasswordHash}
	}
	return records
}

func fromUserRecords(records []userRecord) []model.User {
	users := make([]model.User, len(records))
	for i, rec := range records {
		users[i] = rec.User
		users[i].PasswordHash = rec.PasswordHash
	}
	return users
}

func seedUserRecords() []userRecord {
	return toUserRecords(seedUsers())
}

// UserRepository owns the "users" collection blob.
type UserRepository struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// NewUserRepository creates the repository.
func NewUserRepository(store storage.RecordStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) loadAll(ctx context.Context) ([]model.User, error) {
	records, err := load(ctx, r.store, storage.KeyUsers, seedUserRecords)
	if err != nil {
		return nil, err
	}
	return fromUserRecords(records), nil
}

func (r *UserRepository) saveAll(ctx context.Context, users []model.User) error {
	return save(ctx, r.store, storage.KeyUsers, toUserRecords(users))
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	records, err := loadForRead(ctx, r.store, storage.KeyUsers, seedUserRecords)
	if err != nil {
		return nil, err
	}
	return fromUserRecords(records), nil
}

// GetByID returns one user, or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	records, err := r.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, user := range records {
		if user.ID == id {
			return user, nil
		}
	}
	return model.User{}, ErrNotFound
}

// FindByEmail returns the user with the given email, case-insensitively, or
// ErrNotFound. Used by login.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	records, err := r.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, user := range records {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return model.User{}, ErrNotFound
}

// ListByRole returns users with the given role.
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.User, 0, len(records))
	for _, user := range records {
		if user.Role == role {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}

// ListByInstitution returns users belonging to the given institution.
func (r *UserRepository) ListByInstitution(ctx context.Context, institutionID string) ([]model.User, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.User, 0, len(records))
	for _, user := range records {
		if user.InstitutionID == institutionID {
			filtered = append(filtered, user)
		}
	}
	return filtered, nil
}

// EmailExists reports whether email is already taken, case-insensitively.
// excludeID lets an update keep the record's own email.
func (r *UserRepository) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	records, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	return userEmailTaken(records, email, excludeID), nil
}

func userEmailTaken(records []model.User, email, excludeID string) bool {
	for _, user := range records {
		if strings.EqualFold(user.Email, email) && user.ID != excludeID {
			return true
		}
	}
	return false
}

// Create assigns an id and creation timestamp, defaults the status to active,
// prepends and persists.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return model.User{}, err
	}

	if userEmailTaken(records, user.Email, "") {
		return model.User{}, ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}

	records = append([]model.User{user}, records...)
	if err := r.saveAll(ctx, records); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Update merges the patch over the existing record and persists.
func (r *UserRepository) Update(ctx context.Context, id string, patch model.UserPatch) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return model.User{}, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		if patch.Email != nil && userEmailTaken(records, *patch.Email, id) {
			return model.User{}, ErrDuplicateEmail
		}
		patch.Apply(&records[i])
		if err := r.saveAll(ctx, records); err != nil {
			return model.User{}, err
		}
		return records[i], nil
	}
	return model.User{}, ErrNotFound
}

// Delete removes the record by id, or returns ErrNotFound leaving the
// collection unchanged.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return r.saveAll(ctx, records)
		}
	}
	return ErrNotFound
}

// RecordLogin stamps the user's last login time and returns the updated
// record.
func (r *UserRepository) RecordLogin(ctx context.Context, id string) (model.User, error) {
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadAll(ctx)
	if err != nil {
		return model.User{}, err
	}
	for i := range records {
		if records[i].ID == id {
			records[i].LastLogin = &now
			if err := r.saveAll(ctx, records); err != nil {
				return model.User{}, err
			}
			return records[i], nil
		}
	}
	return model.User{}, ErrNotFound
}
