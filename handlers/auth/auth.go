package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/utils/auth"
	"github.com/lernovate/admin-api/utils/middleware"
	"github.com/lernovate/admin-api/utils/response"
	"github.com/lernovate/admin-api/utils/validation"
)

// Handler handles authentication routes.
type Handler struct {
	users      *repository.UserRepository
	jwtManager *auth.JWTManager
	bruteForce *middleware.BruteForceProtection
	authMw     *middleware.AuthMiddleware
}

// NewHandler creates an auth handler. bruteForce may be nil when no Redis
// backend is configured.
func NewHandler(users *repository.UserRepository, jwtManager *auth.JWTManager, bruteForce *middleware.BruteForceProtection, authMw *middleware.AuthMiddleware) *Handler {
	return &Handler{
		users:      users,
		jwtManager: jwtManager,
		bruteForce: bruteForce,
		authMw:     authMw,
	}
}

var validate = validation.NewValidator()

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the request body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LoginResponse carries the issued tokens and the authenticated user.
type LoginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         model.User `json:"user"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = validation.SanitizeString(req.Email)
	if err := validate.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	user, err := h.users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.recordFailure(c)
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.InternalServerError(c, "Failed to log in")
	}

	if user.Status != model.UserStatusActive {
		return response.Forbidden(c, "Account is "+user.Status)
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		h.recordFailure(c)
		return response.Unauthorized(c, "Invalid email or password")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}
	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	if h.bruteForce != nil {
		h.bruteForce.RecordSuccessfulAttempt(c, c.IP())
	}

	// Best effort; a failed write here should not block the login.
	if recorded, err := h.users.RecordLogin(c.Context(), user.ID); err == nil {
		user = recorded
	}

	return response.SuccessWithMessage(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

// Logout handles POST /auth/logout. The access token's JTI is blacklisted
// until the token would have expired anyway.
func (h *Handler) Logout(c *fiber.Ctx) error {
	jti, ok := middleware.GetTokenJTI(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}

	if err := h.authMw.RevokeToken(c, jti, h.jwtManager.AccessExpiry()); err != nil {
		return response.InternalServerError(c, "Failed to log out")
	}

	return response.SuccessWithMessage(c, "Logout successful", nil)
}

// Me handles GET /auth/me.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Missing authorization token")
	}
	return response.Success(c, user)
}

// Refresh handles POST /auth/refresh, exchanging a refresh token for a new
// access token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.ValidateStruct(req); err != nil {
		return response.ValidationFailed(c, validation.FormatValidationErrors(err))
	}

	accessToken, _, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return response.Unauthorized(c, "Refresh token has expired")
		}
		return response.Unauthorized(c, "Invalid refresh token")
	}

	return response.Success(c, fiber.Map{"accessToken": accessToken})
}

func (h *Handler) recordFailure(c *fiber.Ctx) {
	if h.bruteForce != nil {
		h.bruteForce.RecordFailedAttempt(c, c.IP())
	}
}
