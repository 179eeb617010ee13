package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// APIServer wraps the fiber app and its listen address.
type APIServer struct {
	app           *fiber.App
	listenAddress string
}

// NewAPIServer creates a server bound to listenAddress.
func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName: "lernovate-admin-api",
		}),
		listenAddress: listenAddress,
	}
}

// GetEngine exposes the underlying fiber app for middleware and routes.
func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run starts listening. Blocks until the server stops.
func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}
