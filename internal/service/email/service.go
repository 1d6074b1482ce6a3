package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"

	"northstar-student/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendPermitExpiryReminder(ctx context.Context, toEmail, firstName string, expiry time.Time, days int) error
	SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	log    *zap.Logger
}

// NewService returns a Resend-backed sender. Without an API key every send is
// logged and skipped.
func NewService(cfg *config.Config, log *zap.Logger) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{
		client: client,
		config: cfg,
		log:    log,
	}
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	if s.client == nil {
		s.log.Info("email delivery disabled, skipping", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("NorthStar Student <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Info("email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

func (s *service) SendPermitExpiryReminder(ctx context.Context, toEmail, firstName string, expiry time.Time, days int) error {
	data := struct {
		Title      string
		Name       string
		ExpiryDate string
		Days       int
		Link       string
	}{
		Title:      "Study Permit Expiry Reminder",
		Name:       firstName,
		ExpiryDate: expiry.Format("January 2, 2006"),
		Days:       days,
		Link:       fmt.Sprintf("https://%s/compliance", s.config.Domain),
	}
	subject := fmt.Sprintf("[NorthStar] Study Permit Expires in %d Days", days)
	return s.sendEmail(toEmail, subject, "permit_expiry.html", data)
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Welcome to NorthStar Student",
		Name:  firstName,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Welcome to NorthStar Student", "welcome.html", data)
}
