package email

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"northstar-student/internal/config"
)

func TestRender_PermitExpiry(t *testing.T) {
	html, err := render("permit_expiry.html", struct {
		Title      string
		Name       string
		ExpiryDate string
		Days       int
		Link       string
	}{"Reminder", "Amara", "September 15, 2026", 60, "https://example.test/compliance"})
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Amara,")
	assert.Contains(t, html, "<strong>September 15, 2026</strong> (60 days from now)")
	assert.Contains(t, html, "NorthStar Student Team")
}

func TestRender_EscapesName(t *testing.T) {
	html, err := render("welcome.html", struct {
		Title string
		Name  string
		Link  string
	}{"Welcome", "<script>", "https://example.test/login"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSend_WithoutAPIKeySkips(t *testing.T) {
	svc := NewService(&config.Config{Domain: "example.test"}, zap.NewNop())

	err := svc.SendPermitExpiryReminder(context.Background(), "a@example.test", "Amara",
		time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), 90)
	assert.NoError(t, err)

	assert.NoError(t, svc.SendWelcomeEmail(context.Background(), "a@example.test", "Amara"))
}
