package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-stock-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", h, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":    c.Locals("user_id"),
			"email": c.Locals("user_email"),
		})
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	verifier := jwt.NewVerifier("test-secret", "")
	valid, err := verifier.GenerateToken("user-1", "ana@example.com", "Ana", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Missing authorization token"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid authorization format"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"valid token", "Bearer " + valid, http.StatusOK, `"id":"user-1"`},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, `"email":"ana@example.com"`},
	}

	app := newTestApp(RequireAuth(verifier))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.expectedBody)
		})
	}
}

func TestAnonymousAuth(t *testing.T) {
	app := newTestApp(AnonymousAuth())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"id":"system"`)
}
