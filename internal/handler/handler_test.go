package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/handler"
	"northstar-student/internal/middleware"
	"northstar-student/internal/service/auth"
	"northstar-student/internal/service/compliance"
)

type stubAuth struct {
	user *domain.User
}

func (s *stubAuth) Register(context.Context, domain.CreateUserInput) (*domain.User, *domain.AccessToken, error) {
	return nil, nil, nil
}

func (s *stubAuth) Login(context.Context, domain.LoginInput) (*domain.User, *domain.AccessToken, error) {
	return nil, nil, nil
}

func (s *stubAuth) ValidateAccessToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: s.user.ID}, nil
}

func (s *stubAuth) GetUserByID(context.Context, uuid.UUID) (*domain.User, error) {
	return s.user, nil
}

type stubCompliance struct {
	initErr  error
	count    int
	lastUser uuid.UUID
}

func (s *stubCompliance) Initialize(_ context.Context, userID uuid.UUID) (int, error) {
	s.lastUser = userID
	return s.count, s.initErr
}

func (s *stubCompliance) GetChecklist(context.Context, uuid.UUID) (*domain.Checklist, error) {
	return &domain.Checklist{Items: []domain.ChecklistEntry{}}, nil
}

func (s *stubCompliance) UpdateItem(context.Context, uuid.UUID, uuid.UUID, domain.UpdateComplianceItemInput) (*domain.ChecklistEntry, error) {
	return nil, compliance.ErrItemNotFound
}

func (s *stubCompliance) ListRules(context.Context) ([]domain.ComplianceRule, error) {
	return []domain.ComplianceRule{}, nil
}

func setup(svc *stubCompliance) (*fiber.App, *domain.User) {
	user := &domain.User{ID: uuid.New(), Role: domain.RoleStudent}
	h := handler.NewComplianceHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop())})
	group := app.Group("/api/compliance", middleware.AuthRequired(&stubAuth{user: user}))
	group.Post("/initialize", h.Initialize)
	group.Patch("/checklist/:itemId", h.UpdateItem)
	return app, user
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, int(time.Second.Milliseconds()))
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestInitialize(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := &stubCompliance{count: 12}
		app, user := setup(svc)

		status, body := do(t, app, "POST", "/api/compliance/initialize", "good", "")
		assert.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, float64(12), body["count"])
		assert.Equal(t, user.ID, svc.lastUser)
	})

	t.Run("Already initialized", func(t *testing.T) {
		app, _ := setup(&stubCompliance{initErr: compliance.ErrAlreadyInitialized})
		status, body := do(t, app, "POST", "/api/compliance/initialize", "good", "")
		assert.Equal(t, fiber.StatusConflict, status)
		assert.Equal(t, "Checklist already initialized", body["message"])
	})

	t.Run("No rules", func(t *testing.T) {
		app, _ := setup(&stubCompliance{initErr: compliance.ErrNoRules})
		status, _ := do(t, app, "POST", "/api/compliance/initialize", "good", "")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("Missing token", func(t *testing.T) {
		app, _ := setup(&stubCompliance{})
		status, body := do(t, app, "POST", "/api/compliance/initialize", "", "")
		assert.Equal(t, fiber.StatusUnauthorized, status)
		assert.Equal(t, "Authentication required", body["message"])
	})

	t.Run("Bad token", func(t *testing.T) {
		app, _ := setup(&stubCompliance{})
		status, _ := do(t, app, "POST", "/api/compliance/initialize", "forged", "")
		assert.Equal(t, fiber.StatusUnauthorized, status)
	})
}

func TestUpdateItem(t *testing.T) {
	app, _ := setup(&stubCompliance{})

	status, _ := do(t, app, "PATCH", "/api/compliance/checklist/not-a-uuid", "good", `{"status":"COMPLETED"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body := do(t, app, "PATCH", "/api/compliance/checklist/"+uuid.NewString(), "good", `{"status":"COMPLETED"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Compliance item not found", body["message"])
}
