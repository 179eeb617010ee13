package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lernovate/admin-api/model"
)

func TestCourseCreateForcesEnrollmentToZero(t *testing.T) {
	repo := NewCourseRepository(newTestStore(t))

	created, err := repo.Create(context.Background(), model.Course{
		Name:            "Data Structures",
		Description:     "Lists, trees, graphs",
		Instructor:      "Dr. Sarah Johnson",
		Category:        "Computer Science",
		Duration:        "12 weeks",
		MaxEnrollment:   40,
		StartDate:       "2025-02-01",
		EndDate:         "2025-05-01",
		Price:           10000,
		EnrollmentCount: 999,
	})
	if err != nil {
		t.Fatal(err)
	}

	if created.EnrollmentCount != 0 {
		t.Errorf("enrollment count must start at 0, got %d", created.EnrollmentCount)
	}
	if created.Status != model.CourseStatusDraft {
		t.Errorf("expected default status draft, got %q", created.Status)
	}
	if created.Level != model.LevelBeginner {
		t.Errorf("expected default level beginner, got %q", created.Level)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected both timestamps set")
	}
}

func TestCourseUpdatePreservesUntouchedFields(t *testing.T) {
	repo := NewCourseRepository(newTestStore(t))
	ctx := context.Background()

	before, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}

	price := 20000.0
	updated, err := repo.Update(ctx, "1", model.CoursePatch{Price: &price})
	if err != nil {
		t.Fatal(err)
	}

	if updated.Price != price {
		t.Errorf("price not updated: %v", updated.Price)
	}
	if updated.Name != before.Name || updated.Instructor != before.Instructor {
		t.Error("untouched fields changed")
	}
	if updated.EnrollmentCount != before.EnrollmentCount {
		t.Error("enrollment count changed on an unrelated update")
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Error("UpdatedAt was not refreshed")
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
}

func TestCourseUpdateRoundTrips(t *testing.T) {
	repo := NewCourseRepository(newTestStore(t))
	ctx := context.Background()

	status := model.CourseStatusInactive
	if _, err := repo.Update(ctx, "1", model.CoursePatch{Status: &status}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.CourseStatusInactive {
		t.Errorf("update did not persist, status %q", got.Status)
	}
}

func TestCourseListFilters(t *testing.T) {
	repo := NewCourseRepository(newTestStore(t))
	ctx := context.Background()

	byInstructor, err := repo.ListByInstructor(ctx, "2")
	if err != nil {
		t.Fatal(err)
	}
	for _, course := range byInstructor {
		if course.InstructorID != "2" {
			t.Errorf("instructor filter leaked course %s", course.ID)
		}
	}
	if len(byInstructor) == 0 {
		t.Error("expected seeded courses for instructor 2")
	}

	byCategory, err := repo.ListByCategory(ctx, "Mathematics")
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 1 || byCategory[0].Category != "Mathematics" {
		t.Errorf("category filter returned %v", byCategory)
	}
}

func TestCourseDeleteMissing(t *testing.T) {
	repo := NewCourseRepository(newTestStore(t))

	if err := repo.Delete(context.Background(), "does-not-exist"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCourseCreatePrepends(t *testing.T) {
	repo := NewCourseRepository(newTestStore(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Course{
		Name:          "Newest Course",
		Description:   "d",
		Instructor:    "i",
		Category:      "c",
		Duration:      "1 week",
		MaxEnrollment: 10,
		StartDate:     time.Now().UTC().Format(time.RFC3339),
		EndDate:       time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatal(err)
	}

	courses, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if courses[0].ID != created.ID {
		t.Error("expected the new course first")
	}
}
