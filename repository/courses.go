package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/storage"
)

// CourseRepository owns the "courses" collection blob.
type CourseRepository struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// NewCourseRepository creates the repository.
func NewCourseRepository(store storage.RecordStore) *CourseRepository {
	return &CourseRepository{store: store}
}

// List returns all courses, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	return loadForRead(ctx, r.store, storage.KeyCourses, seedCourses)
}

// GetByID returns one course, or ErrNotFound.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (model.Course, error) {
	records, err := r.List(ctx)
	if err != nil {
		return model.Course{}, err
	}
	for _, course := range records {
		if course.ID == id {
			return course, nil
		}
	}
	return model.Course{}, ErrNotFound
}

// ListByInstructor returns the courses taught by one instructor.
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID string) ([]model.Course, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Course, 0, len(records))
	for _, course := range records {
		if course.InstructorID == instructorID {
			filtered = append(filtered, course)
		}
	}
	return filtered, nil
}

// ListByCategory returns the courses in one category.
func (r *CourseRepository) ListByCategory(ctx context.Context, category string) ([]model.Course, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Course, 0, len(records))
	for _, course := range records {
		if course.Category == category {
			filtered = append(filtered, course)
		}
	}
	return filtered, nil
}

// Create assigns an id and timestamps, forces the enrollment counter to zero
// (never client-settable), prepends and persists.
func (r *CourseRepository) Create(ctx context.Context, course model.Course) (model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeyCourses, seedCourses)
	if err != nil {
		return model.Course{}, err
	}

	now := time.Now().UTC()
	course.ID = uuid.NewString()
	course.EnrollmentCount = 0
	course.CreatedAt = now
	course.UpdatedAt = now
	if course.Status == "" {
		course.Status = model.CourseStatusDraft
	}
	if course.Level == "" {
		course.Level = model.LevelBeginner
	}

	records = append([]model.Course{course}, records...)
	if err := save(ctx, r.store, storage.KeyCourses, records); err != nil {
		return model.Course{}, err
	}
	return course, nil
}

// Update merges the patch over the existing record, refreshes UpdatedAt and
// persists.
func (r *CourseRepository) Update(ctx context.Context, id string, patch model.CoursePatch) (model.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeyCourses, seedCourses)
	if err != nil {
		return model.Course{}, err
	}

	for i := range records {
		if records[i].ID != id {
			continue
		}
		patch.Apply(&records[i])
		records[i].UpdatedAt = time.Now().UTC()
		if err := save(ctx, r.store, storage.KeyCourses, records); err != nil {
			return model.Course{}, err
		}
		return records[i], nil
	}
	return model.Course{}, ErrNotFound
}

// Delete removes the record by id, or returns ErrNotFound leaving the
// collection unchanged.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := load(ctx, r.store, storage.KeyCourses, seedCourses)
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return save(ctx, r.store, storage.KeyCourses, records)
		}
	}
	return ErrNotFound
}
