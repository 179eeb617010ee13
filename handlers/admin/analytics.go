package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/utils/response"
)

// AnalyticsHandler computes platform overview numbers for the admin panel.
type AnalyticsHandler struct {
	repos *repository.Repositories
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(repos *repository.Repositories) *AnalyticsHandler {
	return &AnalyticsHandler{repos: repos}
}

// Overview is the response body for GET /admin/analytics.
type Overview struct {
	TotalInstitutions  int            `json:"totalInstitutions"`
	TotalCourses       int            `json:"totalCourses"`
	TotalUsers         int            `json:"totalUsers"`
	TotalEnrollment    int            `json:"totalEnrollment"`
	UsersByRole        map[string]int `json:"usersByRole"`
	UsersByStatus      map[string]int `json:"usersByStatus"`
	CoursesByStatus    map[string]int `json:"coursesByStatus"`
	CoursesByLevel     map[string]int `json:"coursesByLevel"`
	AverageCoursePrice float64        `json:"averageCoursePrice"`
}

// GetOverview handles GET /admin/analytics.
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	ctx := c.Context()

	institutions, err := h.repos.Institutions.List(ctx)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute analytics")
	}
	courses, err := h.repos.Courses.List(ctx)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute analytics")
	}
	users, err := h.repos.Users.List(ctx)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute analytics")
	}

	overview := Overview{
		TotalInstitutions: len(institutions),
		TotalCourses:      len(courses),
		TotalUsers:        len(users),
		UsersByRole:       map[string]int{},
		UsersByStatus:     map[string]int{},
		CoursesByStatus:   map[string]int{},
		CoursesByLevel:    map[string]int{},
	}

	for _, user := range users {
		overview.UsersByRole[user.Role]++
		overview.UsersByStatus[user.Status]++
	}

	var priceSum float64
	for _, course := range courses {
		overview.TotalEnrollment += course.EnrollmentCount
		overview.CoursesByStatus[course.Status]++
		overview.CoursesByLevel[course.Level]++
		priceSum += course.Price
	}
	if len(courses) > 0 {
		overview.AverageCoursePrice = priceSum / float64(len(courses))
	}

	// Make sure the panel always has the known buckets, even when empty.
	for _, role := range []string{model.RoleAdmin, model.RoleFaculty, model.RoleStudent} {
		if _, ok := overview.UsersByRole[role]; !ok {
			overview.UsersByRole[role] = 0
		}
	}

	return response.Success(c, overview)
}
