// Package handlers holds the HTTP handlers for the admin API.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/utils/response"
)

// Ping handles GET /ping for load balancer health checks.
func Ping(c *fiber.Ctx) error {
	return response.SuccessWithMessage(c, "pong", fiber.Map{
		"status": "healthy",
	})
}
