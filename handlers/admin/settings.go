package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/response"
	"github.com/lernovate/admin-api/utils/validation"
)

// SettingsHandler handles platform settings routes.
type SettingsHandler struct {
	repo *repository.SettingRepository
}

// NewSettingsHandler creates a settings handler.
func NewSettingsHandler(repo *repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

// UpdateSettingRequest is the request body for updating a setting.
type UpdateSettingRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// List handles GET /admin/settings.
func (h *SettingsHandler) List(c *fiber.Ctx) error {
	settings, err := h.repo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch settings")
	}
	return response.Success(c, settings)
}

// Get handles GET /admin/settings/:key.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	setting, err := h.repo.Get(c.Context(), c.Params("key"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "Setting not found")
		}
		return response.InternalServerError(c, "Failed to fetch setting")
	}
	return response.Success(c, setting)
}

// BulkUpdate handles PUT /admin/settings: a key->value map updating several
// settings at once, the way the console saves a settings form.
func (h *SettingsHandler) BulkUpdate(c *fiber.Ctx) error {
	var values map[string]string
	if err := c.BodyParser(&values); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(values) == 0 {
		return response.BadRequest(c, "No settings provided")
	}

	for key, value := range values {
		values[key] = validation.SanitizeString(value)
	}

	settings, err := h.repo.UpdateMany(c.Context(), values)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Setting not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to update settings")
		}
	}

	return response.SuccessWithMessage(c, "Settings updated successfully", settings)
}

// Update handles PUT /admin/settings/:key.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Value = validation.SanitizeString(req.Value)
	req.Description = validation.SanitizeString(req.Description)

	setting, err := h.repo.Update(c.Context(), c.Params("key"), req.Value, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Setting not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to update setting")
		}
	}

	return response.SuccessWithMessage(c, "Setting updated successfully", setting)
}

// Delete handles DELETE /admin/settings/:key.
func (h *SettingsHandler) Delete(c *fiber.Ctx) error {
	err := h.repo.Delete(c.Context(), c.Params("key"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.NotFound(c, "Setting not found")
		case errors.Is(err, storage.ErrStorageUnavailable):
			return response.ServiceUnavailable(c, "Storage is not available")
		default:
			return response.InternalServerError(c, "Failed to delete setting")
		}
	}
	return response.SuccessWithMessage(c, "Setting deleted successfully", nil)
}
