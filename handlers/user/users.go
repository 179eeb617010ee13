package user

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/auth"
	"github.com/lernovate/admin-api/utils/response"
	"github.com/lernovate/admin-api/utils/validation"
)

// Handler handles user routes.
type Handler struct {
	repo *repository.UserRepository
}

// NewHandler creates a user handler.
func NewHandler(repo *repository.UserRepository) *Handler {
	return &Handler{repo: repo}
}

// CreateRequest is the request body for creating a user. Password is
// optional: accounts created without one cannot log in until an admin sets
// it.
type CreateRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	InstitutionID string `json:"institutionId"`
	Phone         string `json:"phone"`
	Avatar        string `json:"avatar"`
	Status        string `json:"status"`
	Password      string `json:"password"`
}

// UpdateRequest is the request body for updating a user. Absent fields are
// left untouched.
type UpdateRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Role          *string `json:"role"`
	InstitutionID *string `json:"institutionId"`
	Phone         *string `json:"phone"`
	Avatar        *string `json:"avatar"`
	Status        *string `json:"status"`
	Password      *string `json:"password"`
}

// List handles GET /users with optional role and institutionId filters.
func (h *Handler) List(c *fiber.Ctx) error {
	var (
		users []model.User
		err   error
	)

	switch {
	case c.Query("role") != "":
		users, err = h.repo.ListByRole(c.Context(), c.Query("role"))
	case c.Query("institutionId") != "":
		users, err = h.repo.ListByInstitution(c.Context(), c.Query("institutionId"))
	default:
		users, err = h.repo.List(c.Context())
	}

	if err != nil {
		return response.InternalServerError(c, "Failed to load users")
	}
	return response.Success(c, users)
}

// Get handles GET /users/:id.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, err := h.repo.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}
	return response.Success(c, user)
}

// Create handles POST /users.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Email = validation.SanitizeString(req.Email)
	req.Phone = validation.SanitizeString(req.Phone)

	if fieldErrs := validation.UserRules(validation.UserInput{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Phone:  req.Phone,
		Avatar: req.Avatar,
		Status: req.Status,
	}); len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	exists, err := h.repo.EmailExists(c.Context(), req.Email, "")
	if err != nil {
		return response.InternalServerError(c, "Failed to create user")
	}
	if exists {
		return response.BadRequest(c, "Email already exists")
	}

	var passwordHash string
	if req.Password != "" {
		passwordHash, err = auth.HashPassword(req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooShort) {
				return response.ValidationFailed(c, map[string]string{"password": err.Error()})
			}
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	user, err := h.repo.Create(c.Context(), model.User{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
		Phone:         req.Phone,
		Avatar:        req.Avatar,
		Status:        req.Status,
		PasswordHash:  passwordHash,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return response.BadRequest(c, "Email already exists")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", user)
}

// Update handles PUT /users/:id. Validation runs against the merged view of
// the stored record and the patch.
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	existing, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	patch := model.UserPatch{
		Name:          req.Name,
		Email:         req.Email,
		Role:          req.Role,
		InstitutionID: req.InstitutionID,
		Phone:         req.Phone,
		Avatar:        req.Avatar,
		Status:        req.Status,
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooShort) {
				return response.ValidationFailed(c, map[string]string{"password": err.Error()})
			}
			return response.InternalServerError(c, "Failed to update user")
		}
		patch.PasswordHash = &hash
	}

	merged := existing
	patch.Apply(&merged)

	if fieldErrs := validation.UserRules(validation.UserInput{
		Name:   merged.Name,
		Email:  merged.Email,
		Role:   merged.Role,
		Phone:  merged.Phone,
		Avatar: merged.Avatar,
		Status: merged.Status,
	}); len(fieldErrs) > 0 {
		return response.ValidationFailed(c, fieldErrs)
	}

	if patch.Email != nil {
		exists, err := h.repo.EmailExists(c.Context(), *patch.Email, id)
		if err != nil {
			return response.InternalServerError(c, "Failed to update user")
		}
		if exists {
			return response.BadRequest(c, "Email already exists")
		}
	}

	user, err := h.repo.Update(c.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return response.BadRequest(c, "Email already exists")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.SuccessWithMessage(c, "User updated successfully", user)
}

// Delete handles DELETE /users/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "User not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to delete user")
		}
	}
	return response.SuccessWithMessage(c, "User deleted successfully", nil)
}
