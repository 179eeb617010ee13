package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/utils/auth"
	"github.com/lernovate/admin-api/utils/cache"
	"github.com/lernovate/admin-api/utils/response"
)

const blacklistKeyPrefix = "auth:blacklist:"

// AuthMiddleware enforces JWT authentication at the route boundary. Role
// checks live here, not in the presentation layer.
type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      *repository.UserRepository
	cache      *cache.RedisCache
}

// NewAuthMiddleware creates the middleware. cache may be nil; token
// revocation is then best-effort client-side only.
func NewAuthMiddleware(jwtManager *auth.JWTManager, users *repository.UserRepository, c *cache.RedisCache) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		users:      users,
		cache:      c,
	}
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, *auth.Claims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil, response.Unauthorized(c, "Missing authorization token")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if err == auth.ErrExpiredToken {
			return nil, nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, nil, response.Unauthorized(c, "Invalid token")
	}

	if claims.TokenType != auth.TokenTypeAccess {
		return nil, nil, response.Unauthorized(c, "Invalid token type")
	}

	if m.cache != nil {
		revoked, err := m.cache.Exists(c.Context(), blacklistKeyPrefix+claims.ID)
		if err == nil && revoked {
			return nil, nil, response.Unauthorized(c, "Token has been revoked")
		}
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, response.Unauthorized(c, "User not found")
		}
		return nil, nil, response.InternalServerError(c, "Failed to load user")
	}

	if user.Status != model.UserStatusActive {
		return nil, nil, response.Forbidden(c, "Account is "+user.Status)
	}

	return &user, claims, nil
}

// Required rejects requests without a valid access token.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, claims, errResp := m.authenticate(c)
		if user == nil {
			return errResp
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", user)
		c.Locals("token_jti", claims.ID)

		return c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not in roles.
// Must run after Required.
func (m *AuthMiddleware) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("user_role").(string)
		if !ok {
			return response.Forbidden(c, "Access denied")
		}
		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}
		return response.Forbidden(c, "Insufficient permissions")
	}
}

// RevokeToken marks a JTI as revoked until its natural expiry. A nil cache
// makes this a no-op.
func (m *AuthMiddleware) RevokeToken(c *fiber.Ctx, jti string, ttl time.Duration) error {
	if m.cache == nil {
		return nil
	}
	return m.cache.Set(c.Context(), blacklistKeyPrefix+jti, "revoked", ttl)
}

// GetUser extracts the authenticated user from the request context.
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user, ok := c.Locals("user").(*model.User)
	return user, ok
}

// GetUserID extracts the authenticated user id from the request context.
func GetUserID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals("user_id").(string)
	return id, ok
}

// GetTokenJTI extracts the access token id from the request context.
func GetTokenJTI(c *fiber.Ctx) (string, bool) {
	jti, ok := c.Locals("token_jti").(string)
	return jti, ok
}
