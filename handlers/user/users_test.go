package user

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lernovate/admin-api/model"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/auth"
)

func newTestApp(t *testing.T) (*fiber.App, *repository.UserRepository) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	repo := repository.NewUserRepository(store)
	handler := NewHandler(repo)

	app := fiber.New()
	app.Get("/users", handler.List)
	app.Get("/users/:id", handler.Get)
	app.Post("/users", handler.Create)
	app.Put("/users/:id", handler.Update)
	app.Delete("/users/:id", handler.Delete)

	return app, repo
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, env
}

func TestCreateUserWithPassword(t *testing.T) {
	app, repo := newTestApp(t)

	resp, env := doJSON(t, app, "POST", "/users", fiber.Map{
		"name":     "New Faculty",
		"email":    "new.faculty@lernovate.com",
		"role":     "faculty",
		"password": "secret-pass-1",
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created model.User
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}

	// Hash stays server-side; the password must verify against it.
	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.PasswordHash == "" {
		t.Fatal("expected a stored password hash")
	}
	if err := auth.VerifyPassword(stored.PasswordHash, "secret-pass-1"); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestCreateUserPasswordNeverSerialized(t *testing.T) {
	app, _ := newTestApp(t)

	_, env := doJSON(t, app, "POST", "/users", fiber.Map{
		"name":     "Another User",
		"email":    "another@lernovate.com",
		"role":     "student",
		"password": "secret-pass-1",
	})

	if bytes.Contains(env.Data, []byte("passwordHash")) || bytes.Contains(env.Data, []byte("secret-pass-1")) {
		t.Fatal("password material leaked into the response")
	}
}

func TestCreateUserShortPassword(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := doJSON(t, app, "POST", "/users", fiber.Map{
		"name":     "Short Pass",
		"email":    "short@lernovate.com",
		"role":     "student",
		"password": "short",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Fields["password"] == "" {
		t.Fatalf("expected a password field error, got %+v", env.Error)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := doJSON(t, app, "POST", "/users", fiber.Map{
		"name":  "Clone",
		"email": "Admin@Lernovate.com",
		"role":  "student",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Message != "Email already exists" {
		t.Errorf("got message %q", env.Message)
	}
}

func TestUpdateUserRoleOnly(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := doJSON(t, app, "PUT", "/users/3", fiber.Map{
		"role": "faculty",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated model.User
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Role != model.RoleFaculty {
		t.Errorf("role not updated: %q", updated.Role)
	}
	if updated.Email != "student@lernovate.com" {
		t.Errorf("untouched email changed: %q", updated.Email)
	}
}

func TestUpdateUserInvalidRole(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := doJSON(t, app, "PUT", "/users/3", fiber.Map{
		"role": "superuser",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Fields["role"] == "" {
		t.Fatalf("expected a role field error, got %+v", env.Error)
	}
}

func TestListUsersByRole(t *testing.T) {
	app, _ := newTestApp(t)

	_, env := doJSON(t, app, "GET", "/users?role=admin", nil)

	var users []model.User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Role != model.RoleAdmin {
		t.Fatalf("role filter returned %v", users)
	}
}

func TestDeleteUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "DELETE", "/users/6", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "GET", "/users/6", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}
