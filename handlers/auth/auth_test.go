package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/auth"
	"github.com/lernovate/admin-api/utils/middleware"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	users := repository.NewUserRepository(store)
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Issuer: "lernovate-admin-api",
	})
	authMw := middleware.NewAuthMiddleware(jwtManager, users, nil)
	handler := NewHandler(users, jwtManager, nil, authMw)

	app := fiber.New()
	app.Post("/auth/login", handler.Login)
	app.Post("/auth/refresh", handler.Refresh)
	app.Post("/auth/logout", authMw.Required(), handler.Logout)
	app.Get("/auth/me", authMw.Required(), handler.Me)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatal(err)
	}

	var env map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, env
}

func login(t *testing.T, app *fiber.App, email, password string) (*http.Response, LoginResponse) {
	t.Helper()

	resp, env := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    email,
		"password": password,
	})

	var data LoginResponse
	if raw, ok := env["data"]; ok {
		if err := json.Unmarshal(raw, &data); err != nil {
			t.Fatal(err)
		}
	}
	return resp, data
}

func TestLoginSuccess(t *testing.T) {
	app := newTestApp(t)

	resp, data := login(t, app, "admin@lernovate.com", "admin123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if data.AccessToken == "" || data.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if data.User.Email != "admin@lernovate.com" {
		t.Errorf("got user %q", data.User.Email)
	}
	if data.User.LastLogin == nil {
		t.Error("expected the login to be stamped")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)

	resp, _ := login(t, app, "admin@lernovate.com", "wrong-password")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newTestApp(t)

	resp, _ := login(t, app, "ghost@lernovate.com", "whatever123")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginSuspendedAccount(t *testing.T) {
	app := newTestApp(t)

	// david.brown is seeded suspended.
	resp, _ := login(t, app, "david.brown@lernovate.com", "whatever123")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMeRequiresToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMeWithToken(t *testing.T) {
	app := newTestApp(t)

	resp, data := login(t, app, "faculty@lernovate.com", "faculty123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+data.AccessToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRefreshFlow(t *testing.T) {
	app := newTestApp(t)

	resp, data := login(t, app, "admin@lernovate.com", "admin123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}

	resp, env := postJSON(t, app, "/auth/refresh", fiber.Map{
		"refreshToken": data.RefreshToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(env["data"], &refreshed); err != nil {
		t.Fatal(err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected a fresh access token")
	}

	// An access token must not pass as a refresh token.
	resp, _ = postJSON(t, app, "/auth/refresh", fiber.Map{
		"refreshToken": data.AccessToken,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
