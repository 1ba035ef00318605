package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hanapbahay/internal/config"
	"hanapbahay/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "auth-test-secret-key-which-is-long-enough"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func makeToken(t *testing.T, userID uuid.UUID, role models.UserRole, expiry time.Duration) string {
	return signToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"exp":  time.Now().Add(expiry).Unix(),
	})
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	InitMiddleware(&config.Config{JWTSecret: testSecret})

	app := fiber.New()
	app.Get("/private", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID": c.Locals("userID"),
			"role":   c.Locals("userRole"),
		})
	})
	app.Get("/landlord", AuthRequired, RoleRequired(models.RoleLandlord), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	app := newAuthApp(t)
	userID := uuid.New()

	t.Run("accepts a valid token", func(t *testing.T) {
		resp := do(t, app, "/private", makeToken(t, userID, models.RoleRenter, time.Hour))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		resp := do(t, app, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		resp := do(t, app, "/private", makeToken(t, userID, models.RoleRenter, -time.Hour))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		token := signToken(t, "some-other-secret-key-also-long-enough", jwt.MapClaims{
			"sub": userID.String(),
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		resp := do(t, app, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a non-uuid subject", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "12345",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		resp := do(t, app, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRoleRequired(t *testing.T) {
	app := newAuthApp(t)
	userID := uuid.New()

	t.Run("matching role passes", func(t *testing.T) {
		resp := do(t, app, "/landlord", makeToken(t, userID, models.RoleLandlord, time.Hour))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("admin passes every role check", func(t *testing.T) {
		resp := do(t, app, "/landlord", makeToken(t, userID, models.RoleAdmin, time.Hour))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		resp := do(t, app, "/landlord", makeToken(t, userID, models.RoleRenter, time.Hour))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
