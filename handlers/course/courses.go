package course

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/response"
	"github.com/lernovate/admin-api/utils/validation"
)

// Handler handles course routes.
type Handler struct {
	repo *repository.CourseRepository
}

// NewHandler creates a course handler.
func NewHandler(repo *repository.CourseRepository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the request body for creating a course. There is no
// enrollmentCount field: the counter is system-managed and starts at zero.
type CreateRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Instructor    string  `json:"instructor"`
	InstructorID  string  `json:"instructorId"`
	Category      string  `json:"category"`
	Duration      string  `json:"duration"`
	Level         string  `json:"level"`
	Status        string  `json:"status"`
	MaxEnrollment int     `json:"maxEnrollment"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Price         float64 `json:"price"`
	Thumbnail     string  `json:"thumbnail"`
	InstitutionID string  `json:"institutionId"`
}

// List handles GET /courses with optional instructorId and category filters.
func (h *Handler) List(c *fiber.Ctx) error {
	var (
		courses []model.Course
		err     error
	)

	switch {
	case c.Query("instructorId") != "":
		courses, err = h.repo.ListByInstructor(c.Context(), c.Query("instructorId"))
	case c.Query("category") != "":
		courses, err = h.repo.ListByCategory(c.Context(), c.Query("category"))
	default:
		courses, err = h.repo.List(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to load courses")
	}
	return response.Success(c, courses)
}

// Get handles GET /courses/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	course, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}
	return response.Success(c, course)
}

// Create handles POST /courses.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Description = validation.SanitizeString(req.Description)
	req.Instructor = validation.SanitizeString(req.Instructor)
	req.Category = validation.SanitizeString(req.Category)
	req.Duration = validation.SanitizeString(req.Duration)

	if fieldErrs := validation.CourseRules(validation.CourseInput{
		Name:          req.Name,
		Description:   req.Description,
		Instructor:    req.Instructor,
		Category:      req.Category,
		Duration:      req.Duration,
		Level:         req.Level,
		Status:        req.Status,
		MaxEnrollment: req.MaxEnrollment,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Price:         req.Price,
		Thumbnail:     req.Thumbnail,
	}); len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	course, err := h.repo.Create(c.Context(), model.Course{
		Name:          req.Name,
		Description:   req.Description,
		Instructor:    req.Instructor,
		InstructorID:  req.InstructorID,
		Category:      req.Category,
		Duration:      req.Duration,
		Level:         req.Level,
		Status:        req.Status,
		MaxEnrollment: req.MaxEnrollment,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Price:         req.Price,
		Thumbnail:     req.Thumbnail,
		InstitutionID: req.InstitutionID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrStorageUnavailable) {
			return response.ServiceUnavailable(c, "Storage is not available")
		}
		return response.InternalServerError(c, "Failed to create course")
	}

	return response.Created(c, "Course created successfully", course)
}

// Update handles PUT /courses/:id. The patch merges over the stored record;
// cross-field rules (date ordering, enrollment bounds) run against the merged
// view before anything is written.
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch model.CoursePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	existing, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	merged := existing
	patch.Apply(&merged)

	if fieldErrs := validation.CourseRules(validation.CourseInput{
		Name:          merged.Name,
		Description:   merged.Description,
		Instructor:    merged.Instructor,
		Category:      merged.Category,
		Duration:      merged.Duration,
		Level:         merged.Level,
		Status:        merged.Status,
		MaxEnrollment: merged.MaxEnrollment,
		StartDate:     merged.StartDate,
		EndDate:       merged.EndDate,
		Price:         merged.Price,
		Thumbnail:     merged.Thumbnail,
	}); len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	course, err := h.repo.Update(c.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to update course")
		}
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// Delete handles DELETE /courses/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to delete course")
		}
	}
	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
