package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"northstar-student/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (*domain.NotificationList, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) NotifyWorkHourAlert(ctx context.Context, userID uuid.UUID, alert *domain.WorkHourAlert) error {
	args := m.Called(ctx, userID, alert)
	return args.Error(0)
}

func (m *NotificationService) NotifyPermitExpiringSoon(ctx context.Context, userID uuid.UUID, expiry time.Time, days int) error {
	args := m.Called(ctx, userID, expiry, days)
	return args.Error(0)
}

func (m *NotificationService) NotifyPermitCheckpoint(ctx context.Context, userID, permitID uuid.UUID, expiry time.Time, cp domain.ReminderCheckpoint) error {
	args := m.Called(ctx, userID, permitID, expiry, cp)
	return args.Error(0)
}

func (m *NotificationService) NotifyComplianceOverdue(ctx context.Context, userID, itemID uuid.UUID, ruleTitle string) error {
	args := m.Called(ctx, userID, itemID, ruleTitle)
	return args.Error(0)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendPermitExpiryReminder(ctx context.Context, toEmail, firstName string, expiry time.Time, days int) error {
	args := m.Called(ctx, toEmail, firstName, expiry, days)
	return args.Error(0)
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	args := m.Called(ctx, toEmail, firstName)
	return args.Error(0)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) ActiveRules(ctx context.Context) ([]domain.ComplianceRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceRule), args.Error(1)
}

func (m *CatalogService) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
