package admin

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lernovate/admin-api/services/spaces"
	"github.com/lernovate/admin-api/utils/response"
)

// 5 MB cap on uploaded media.
const maxUploadSize = 5 << 20

var allowedMediaTypes = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// MediaHandler uploads logos, avatars and thumbnails to the object store.
type MediaHandler struct {
	spaces *spaces.Client
}

// NewMediaHandler creates a media handler. spacesClient may be nil when the
// object store is not configured; uploads then return 503.
func NewMediaHandler(spacesClient *spaces.Client) *MediaHandler {
	return &MediaHandler{spaces: spacesClient}
}

// Upload handles POST /admin/media. Expects a multipart "file" field and an
// optional "folder" field (logos, avatars, thumbnails).
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	if h.spaces == nil {
		return response.ServiceUnavailable(c, "Media storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "Missing file")
	}
	if fileHeader.Size > maxUploadSize {
		return response.BadRequest(c, "File exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedMediaTypes[ext] {
		return response.BadRequest(c, "Unsupported file type")
	}

	folder := c.FormValue("folder", "media")
	switch folder {
	case "logos", "avatars", "thumbnails", "media":
	default:
		return response.BadRequest(c, "Invalid folder")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read file")
	}
	defer file.Close()

	key := fmt.Sprintf("%s/%d-%s%s", folder, time.Now().UTC().Unix(), uuid.NewString(), ext)

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.spaces.Upload(c.Context(), key, file, contentType)
	if err != nil {
		return response.InternalServerError(c, "Failed to upload file")
	}

	return response.Created(c, "File uploaded successfully", fiber.Map{
		"url": url,
		"key": key,
	})
}

// Delete handles DELETE /admin/media/:key (url-encoded object key).
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	if h.spaces == nil {
		return response.ServiceUnavailable(c, "Media storage is not configured")
	}

	objectKey := c.Params("*")
	if objectKey == "" {
		return response.BadRequest(c, "Missing object key")
	}

	if err := h.spaces.Delete(c.Context(), objectKey); err != nil {
		return response.InternalServerError(c, "Failed to delete file")
	}
	return response.SuccessWithMessage(c, "File deleted successfully", nil)
}
