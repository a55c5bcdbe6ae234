package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnsurePlayerID(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", EnsurePlayerID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{"header", "/whoami", "alice", fiber.StatusOK, "alice"},
		{"query fallback", "/whoami?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins", "/whoami?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"missing", "/whoami", "", fiber.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Player-ID", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d; want %d", resp.StatusCode, tt.status)
			}
			if tt.body != "" {
				got, _ := io.ReadAll(resp.Body)
				if string(got) != tt.body {
					t.Errorf("body = %q; want %q", got, tt.body)
				}
			}
		})
	}
}

func TestEnsurePlayerIDOutlivesRequest(t *testing.T) {
	app := fiber.New()
	var seen []string
	app.Get("/seat", EnsurePlayerID(), func(c *fiber.Ctx) error {
		seen = append(seen, c.Locals("playerID").(string))
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, id := range []string{"alice", "zelda-the-second"} {
		req := httptest.NewRequest("GET", "/seat", nil)
		req.Header.Set("X-Player-ID", id)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	if len(seen) != 2 || seen[0] != "alice" || seen[1] != "zelda-the-second" {
		t.Errorf("stored ids = %q; want [alice zelda-the-second]", seen)
	}
}
