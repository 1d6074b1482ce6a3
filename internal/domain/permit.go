package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PermitStatus string

const (
	PermitActive       PermitStatus = "ACTIVE"
	PermitExpiringSoon PermitStatus = "EXPIRING_SOON"
	PermitExpired      PermitStatus = "EXPIRED"
)

// ExpiringSoonDays is the horizon inside which a permit is EXPIRING_SOON.
const ExpiringSoonDays = 90

type StudyPermit struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	UserID         uuid.UUID      `json:"user_id" db:"user_id"`
	PermitNumber   *string        `json:"permit_number,omitempty" db:"permit_number"`
	IssueDate      *time.Time     `json:"issue_date,omitempty" db:"issue_date"`
	ExpiryDate     time.Time      `json:"expiry_date" db:"expiry_date"`
	Status         PermitStatus   `json:"status" db:"status"`
	Conditions     pq.StringArray `json:"conditions" db:"conditions"`
	ReminderSent90 bool           `json:"reminder_sent_90" db:"reminder_sent_90"`
	ReminderSent60 bool           `json:"reminder_sent_60" db:"reminder_sent_60"`
	ReminderSent30 bool           `json:"reminder_sent_30" db:"reminder_sent_30"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

type UpsertPermitInput struct {
	PermitNumber *string  `json:"permit_number,omitempty"`
	IssueDate    *string  `json:"issue_date,omitempty"`
	ExpiryDate   string   `json:"expiry_date" validate:"required"`
	Conditions   []string `json:"conditions,omitempty"`
}

// PermitReminder is a permit due for a checkpoint reminder, joined with the
// owner's contact details.
type PermitReminder struct {
	StudyPermit
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
}

// ReminderCheckpoint is a days-before-expiry threshold with its own sent flag.
type ReminderCheckpoint int

const (
	Checkpoint90 ReminderCheckpoint = 90
	Checkpoint60 ReminderCheckpoint = 60
	Checkpoint30 ReminderCheckpoint = 30
)

// ReminderCheckpoints lists every checkpoint. Order carries no meaning; each
// checkpoint is keyed by its own flag and date window.
var ReminderCheckpoints = []ReminderCheckpoint{Checkpoint90, Checkpoint60, Checkpoint30}

func (c ReminderCheckpoint) Days() int {
	return int(c)
}

// Sent reports whether the checkpoint's flag is set on p.
func (c ReminderCheckpoint) Sent(p *StudyPermit) bool {
	switch c {
	case Checkpoint90:
		return p.ReminderSent90
	case Checkpoint60:
		return p.ReminderSent60
	case Checkpoint30:
		return p.ReminderSent30
	default:
		return false
	}
}

// Mark sets the checkpoint's flag on p. Flags never revert.
func (c ReminderCheckpoint) Mark(p *StudyPermit) {
	switch c {
	case Checkpoint90:
		p.ReminderSent90 = true
	case Checkpoint60:
		p.ReminderSent60 = true
	case Checkpoint30:
		p.ReminderSent30 = true
	}
}

// DaysUntil returns the whole days from now to t, rounded up.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// PermitStatusAt classifies a permit: more than 90 days left is ACTIVE, any
// positive remainder is EXPIRING_SOON, otherwise EXPIRED.
func PermitStatusAt(expiry, now time.Time) PermitStatus {
	days := DaysUntil(expiry, now)
	switch {
	case days <= 0:
		return PermitExpired
	case days <= ExpiringSoonDays:
		return PermitExpiringSoon
	default:
		return PermitActive
	}
}

// PermitView is a permit with its remaining days, computed at read time.
type PermitView struct {
	Permit          *StudyPermit `json:"permit"`
	DaysUntilExpiry *int         `json:"days_until_expiry,omitempty"`
	Status          PermitStatus `json:"status,omitempty"`
	Message         string       `json:"message,omitempty"`
}
