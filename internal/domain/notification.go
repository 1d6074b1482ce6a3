package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID      uuid.UUID           `json:"id" db:"id"`
	UserID  uuid.UUID           `json:"user_id" db:"user_id"`
	Type    NotificationType    `json:"type" db:"type"`
	Title   string              `json:"title" db:"title"`
	Message string              `json:"message" db:"message"`
	Channel NotificationChannel `json:"channel" db:"channel"`
	Data    json.RawMessage     `json:"data,omitempty" db:"data"`
	IsRead  bool                `json:"is_read" db:"is_read"`
	SentAt  time.Time           `json:"sent_at" db:"sent_at"`
}

type NotificationType string

const (
	NotifPermitExpiry      NotificationType = "PERMIT_EXPIRY"
	NotifWorkHourWarning   NotificationType = "WORK_HOUR_WARNING"
	NotifWorkHourLimit     NotificationType = "WORK_HOUR_LIMIT"
	NotifComplianceOverdue NotificationType = "COMPLIANCE_OVERDUE"
	NotifDocumentReminder  NotificationType = "DOCUMENT_REMINDER"
	NotifGeneral           NotificationType = "GENERAL"
)

type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "IN_APP"
	ChannelEmail NotificationChannel = "EMAIL"
)

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unread_count"`
}
