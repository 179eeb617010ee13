package institution

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/response"
	"github.com/lernovate/admin-api/utils/validation"
)

// Handler handles institution routes.
type Handler struct {
	repo *repository.InstitutionRepository
}

// NewHandler creates an institution handler.
func NewHandler(repo *repository.InstitutionRepository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the request body for creating an institution.
type CreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Address string `json:"address"`
	LogoURL string `json:"logoUrl"`
}

// UpdateRequest is the request body for updating an institution. Absent
// fields are left untouched.
type UpdateRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	Address *string `json:"address"`
	LogoURL *string `json:"logoUrl"`
}

// List handles GET /institutions.
func (h *Handler) List(c *fiber.Ctx) error {
	institutions, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch institutions")
	}
	return response.Success(c, institutions)
}

// Get handles GET /institutions/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	institution, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to fetch institution")
	}
	return response.SuccessWithMessage(c, "Institution retrieved successfully", institution)
}

// Create handles POST /institutions.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Email = validation.SanitizeString(req.Email)
	req.Phone = validation.SanitizeString(req.Phone)
	req.Website = validation.SanitizeString(req.Website)
	req.Address = validation.SanitizeString(req.Address)
	req.LogoURL = validation.SanitizeString(req.LogoURL)

	if fieldErrs := validation.InstitutionRules(validation.InstitutionInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
		Address: req.Address,
		LogoURL: req.LogoURL,
	}); len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	exists, err := h.repo.EmailExists(c.Context(), req.Email, "")
	if err != nil {
		return response.InternalServerError(c, "Failed to create institution")
	}
	if exists {
		return response.BadRequest(c, "An institution with this email already exists")
	}

	institution, err := h.repo.Create(c.Context(), model.Institution{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
		Address: req.Address,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return response.BadRequest(c, "An institution with this email already exists")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to create institution")
		}
	}

	return response.Created(c, "Institution created successfully", institution)
}

// Update handles PUT /institutions/:id. Validation runs against the merged
// view of the existing record and the patch, so partial updates cannot bypass
// field rules.
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	existing, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "Institution not found")
		}
		return response.InternalServerError(c, "Failed to fetch institution")
	}

	patch := model.InstitutionPatch{
		Name:    sanitized(req.Name),
		Email:   sanitized(req.Email),
		Phone:   sanitized(req.Phone),
		Website: sanitized(req.Website),
		Address: sanitized(req.Address),
		LogoURL: sanitized(req.LogoURL),
	}

	merged := existing
	patch.Apply(&merged)

	if fieldErrs := validation.InstitutionRules(validation.InstitutionInput{
		Name:    merged.Name,
		Email:   merged.Email,
		Phone:   merged.Phone,
		Website: merged.Website,
		Address: merged.Address,
		LogoURL: merged.LogoURL,
	}); len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	if patch.Email != nil {
		exists, err := h.repo.EmailExists(c.Context(), *patch.Email, id)
		if err != nil {
			return response.InternalServerError(c, "Failed to update institution")
		}
		if exists {
			return response.BadRequest(c, "An institution with this email already exists")
		}
	}

	institution, err := h.repo.Update(c.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Institution not found")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return response.BadRequest(c, "An institution with this email already exists")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to update institution")
		}
	}

	return response.SuccessWithMessage(c, "Institution updated successfully", institution)
}

// Delete handles DELETE /institutions/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Institution not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to delete institution")
		}
	}
	return response.SuccessWithMessage(c, "Institution deleted successfully", nil)
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	clean := validation.SanitizeString(*s)
	return &clean
}
