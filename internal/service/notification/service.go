package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"

	"northstar-student/internal/domain"
	"northstar-student/internal/repository"
)

var ErrNotFound = errors.New("notification not found")

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// displayDate is how dates appear in notification copy.
const displayDate = "1/2/2006"

type Service interface {
	Create(ctx context.Context, notif *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (*domain.NotificationList, error)
	MarkAsRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error

	NotifyWorkHourAlert(ctx context.Context, userID uuid.UUID, alert *domain.WorkHourAlert) error
	NotifyPermitExpiringSoon(ctx context.Context, userID uuid.UUID, expiry time.Time, days int) error
	NotifyPermitCheckpoint(ctx context.Context, userID, permitID uuid.UUID, expiry time.Time, cp domain.ReminderCheckpoint) error
	NotifyComplianceOverdue(ctx context.Context, userID, itemID uuid.UUID, ruleTitle string) error
}

type service struct {
	notifRepo repository.NotificationRepository
	clock     clockz.Clock
	loc       *time.Location
}

func NewService(notifRepo repository.NotificationRepository, clock clockz.Clock, loc *time.Location) Service {
	return &service{
		notifRepo: notifRepo,
		clock:     clock,
		loc:       loc,
	}
}

func (s *service) Create(ctx context.Context, notif *domain.Notification) error {
	if notif.ID == uuid.Nil {
		notif.ID = uuid.New()
	}
	if notif.Channel == "" {
		notif.Channel = domain.ChannelInApp
	}
	if notif.SentAt.IsZero() {
		notif.SentAt = s.clock.Now()
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) (*domain.NotificationList, error) {
	if limit < 1 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	notifications, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationList{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	notif, err := s.notifRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if notif == nil {
		return ErrNotFound
	}
	return s.notifRepo.MarkAsRead(ctx, userID, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) NotifyWorkHourAlert(ctx context.Context, userID uuid.UUID, alert *domain.WorkHourAlert) error {
	if alert == nil {
		return nil
	}

	total := domain.FormatHours(alert.TotalHours)
	notif := &domain.Notification{UserID: userID, Channel: domain.ChannelInApp}

	switch alert.Level {
	case domain.AlertCritical:
		notif.Type = domain.NotifWorkHourLimit
		notif.Title = "Work Hour Limit Exceeded!"
		notif.Message = fmt.Sprintf("You have logged %s hours this week, exceeding the %s-hour cap.",
			total, domain.FormatHours(domain.WorkHourCapPerWeek))
	case domain.AlertWarning:
		notif.Type = domain.NotifWorkHourWarning
		notif.Title = "Approaching Work Hour Limit"
		notif.Message = fmt.Sprintf("You have logged %s hours this week. Only %sh remaining.",
			total, domain.FormatHours(domain.WorkHourCapPerWeek-alert.TotalHours))
	default:
		return fmt.Errorf("unknown alert level %q", alert.Level)
	}

	notif.Data = mustJSON(map[string]interface{}{
		"total_hours": alert.TotalHours,
		"cap":         domain.WorkHourCapPerWeek,
	})
	return s.Create(ctx, notif)
}

func (s *service) NotifyPermitExpiringSoon(ctx context.Context, userID uuid.UUID, expiry time.Time, days int) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifPermitExpiry,
		Title:   "Study Permit Expiring Soon",
		Message: fmt.Sprintf("Your study permit expires in %d days (%s). Begin your renewal process now.", days, s.formatDate(expiry)),
		Channel: domain.ChannelInApp,
		Data: mustJSON(map[string]interface{}{
			"expiry_date":       expiry.In(s.loc).Format(domain.DateLayout),
			"days_until_expiry": days,
		}),
	})
}

func (s *service) NotifyPermitCheckpoint(ctx context.Context, userID, permitID uuid.UUID, expiry time.Time, cp domain.ReminderCheckpoint) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifPermitExpiry,
		Title:   fmt.Sprintf("Study Permit Expires in %d Days", cp.Days()),
		Message: fmt.Sprintf("Your study permit expires on %s. Start your renewal process now to maintain your status in Canada.", s.formatDate(expiry)),
		Channel: domain.ChannelEmail,
		Data: mustJSON(map[string]interface{}{
			"permit_id":   permitID,
			"checkpoint":  cp.Days(),
			"expiry_date": expiry.In(s.loc).Format(domain.DateLayout),
		}),
	})
}

func (s *service) NotifyComplianceOverdue(ctx context.Context, userID, itemID uuid.UUID, ruleTitle string) error {
	return s.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifComplianceOverdue,
		Title:   fmt.Sprintf("Overdue: %s", ruleTitle),
		Message: fmt.Sprintf("Your compliance item %q is now overdue. Complete it immediately to maintain your status.", ruleTitle),
		Channel: domain.ChannelInApp,
		Data: mustJSON(map[string]interface{}{
			"compliance_item_id": itemID,
		}),
	})
}

func (s *service) formatDate(t time.Time) string {
	return t.In(s.loc).Format(displayDate)
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
