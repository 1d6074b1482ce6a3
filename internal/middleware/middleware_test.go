package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/middleware"
	"northstar-student/internal/pkg/validation"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop())})
}

func decode(t *testing.T, app *fiber.App, path string) (int, middleware.ErrorResponse) {
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestErrorHandler(t *testing.T) {
	app := newApp()
	app.Get("/validation", func(c *fiber.Ctx) error {
		return validation.New("hours_worked", "Hours must be between 0.25 and 24")
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return middleware.Conflict("Checklist already initialized")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})

	status, body := decode(t, app, "/validation")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "hours_worked", body.Field)
	assert.Equal(t, "Hours must be between 0.25 and 24", body.Message)

	status, body = decode(t, app, "/conflict")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body.Code)

	status, body = decode(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotEmpty(t, body.TraceID)
}

func TestRequireRole(t *testing.T) {
	withUser := func(role string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			user := &domain.User{ID: uuid.New(), Role: role}
			c.Locals(middleware.UserContextKey, user)
			c.Locals(middleware.UserIDContextKey, user.ID)
			return c.Next()
		}
	}
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) }

	app := newApp()
	app.Get("/admin", withUser(domain.RoleAdmin), middleware.RequireRole(domain.RoleAdmin), ok)
	app.Get("/student", withUser(domain.RoleStudent), middleware.RequireRole(domain.RoleAdmin), ok)
	app.Get("/anonymous", middleware.RequireRole(domain.RoleAdmin), ok)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	status, body := decode(t, app, "/student")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Admin access required", body.Message)

	status, _ = decode(t, app, "/anonymous")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
