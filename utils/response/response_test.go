package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestValidationFailedMessageIsDeterministic(t *testing.T) {
	app := fiber.New()
	app.Post("/validate", func(c *fiber.Ctx) error {
		return ValidationFailed(c, map[string]string{
			"name":    "Name is required",
			"email":   "Please provide a valid email address",
			"website": "Please provide a valid website URL",
		})
	})

	// Map iteration order varies between runs, the promoted message must not.
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest("POST", "/validate", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}

		var body Response
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Message != "Please provide a valid email address" {
			t.Fatalf("run %d: expected the alphabetically first field message, got %q", i, body.Message)
		}
		if body.Error == nil || len(body.Error.Fields) != 3 {
			t.Fatal("field map missing from error detail")
		}
	}
}

func TestValidationFailedEmptyFields(t *testing.T) {
	app := fiber.New()
	app.Post("/validate", func(c *fiber.Ctx) error {
		return ValidationFailed(c, nil)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/validate", nil))
	if err != nil {
		t.Fatal(err)
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Message != "Validation failed" {
		t.Fatalf("expected fallback message, got %q", body.Message)
	}
}
