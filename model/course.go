package model

import "time"

// Course levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Course statuses.
const (
	CourseStatusActive   = "active"
	CourseStatusInactive = "inactive"
	CourseStatusDraft    = "draft"
)

// Course represents a course offered through the platform.
// StartDate and EndDate are kept as submitted (RFC 3339 or plain YYYY-MM-DD);
// ordering is checked by the validation layer before any write.
type Course struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Instructor      string    `json:"instructor"`
	InstructorID    string    `json:"instructorId,omitempty"`
	Category        string    `json:"category"`
	Duration        string    `json:"duration"`
	Level           string    `json:"level"`
	Status          string    `json:"status"`
	EnrollmentCount int       `json:"enrollmentCount"`
	MaxEnrollment   int       `json:"maxEnrollment"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	Price           float64   `json:"price"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	InstitutionID   string    `json:"institutionId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CoursePatch carries a partial update. Nil fields are left untouched.
// EnrollmentCount is deliberately absent: it is system-managed.
type CoursePatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Instructor    *string  `json:"instructor,omitempty"`
	InstructorID  *string  `json:"instructorId,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Duration      *string  `json:"duration,omitempty"`
	Level         *string  `json:"level,omitempty"`
	Status        *string  `json:"status,omitempty"`
	MaxEnrollment *int     `json:"maxEnrollment,omitempty"`
	StartDate     *string  `json:"startDate,omitempty"`
	EndDate       *string  `json:"endDate,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Thumbnail     *string  `json:"thumbnail,omitempty"`
	InstitutionID *string  `json:"institutionId,omitempty"`
}

// Apply merges the patch into the course, field by field.
func (p CoursePatch) Apply(course *Course) {
	if p.Name != nil {
		course.Name = *p.Name
	}
	if p.Description != nil {
		course.Description = *p.Description
	}
	if p.Instructor != nil {
		course.Instructor = *p.Instructor
	}
	if p.InstructorID != nil {
		course.InstructorID = *p.InstructorID
	}
	if p.Category != nil {
		course.Category = *p.Category
	}
	if p.Duration != nil {
		course.Duration = *p.Duration
	}
	if p.Level != nil {
		course.Level = *p.Level
	}
	if p.Status != nil {
		course.Status = *p.Status
	}
	if p.MaxEnrollment != nil {
		course.MaxEnrollment = *p.MaxEnrollment
	}
	if p.StartDate != nil {
		course.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		course.EndDate = *p.EndDate
	}
	if p.Price != nil {
		course.Price = *p.Price
	}
	if p.Thumbnail != nil {
		course.Thumbnail = *p.Thumbnail
	}
	if p.InstitutionID != nil {
		course.InstitutionID = *p.InstitutionID
	}
}
