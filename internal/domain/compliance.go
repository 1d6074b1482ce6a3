package domain

import (
	"time"

	"github.com/google/uuid"
)

type ComplianceStatus string

const (
	CompliancePending       ComplianceStatus = "PENDING"
	ComplianceInProgress    ComplianceStatus = "IN_PROGRESS"
	ComplianceCompleted     ComplianceStatus = "COMPLETED"
	ComplianceOverdue       ComplianceStatus = "OVERDUE"
	ComplianceNotApplicable ComplianceStatus = "NOT_APPLICABLE"
)

// IsOpen reports whether the sweep may still move the item to OVERDUE.
func (s ComplianceStatus) IsOpen() bool {
	return s == CompliancePending || s == ComplianceInProgress
}

type ComplianceItem struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	RuleID      string           `json:"rule_id" db:"rule_id"`
	Status      ComplianceStatus `json:"status" db:"status"`
	DueDate     *time.Time       `json:"due_date,omitempty" db:"due_date"`
	CompletedAt *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	DocumentID  *uuid.UUID       `json:"document_id,omitempty" db:"document_id"`
	Notes       *string          `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// ChecklistEntry is an item with its rule, as shown on the checklist.
type ChecklistEntry struct {
	ComplianceItem
	Rule ComplianceRule `json:"rule" db:"rule"`
}

type ChecklistStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	Overdue        int `json:"overdue"`
	InProgress     int `json:"in_progress"`
	CompletionRate int `json:"completion_rate"`
}

type Checklist struct {
	Items []ChecklistEntry `json:"checklist"`
	Stats ChecklistStats   `json:"stats"`
}

type UpdateComplianceItemInput struct {
	Status     ComplianceStatus `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED NOT_APPLICABLE"`
	Notes      *string          `json:"notes,omitempty"`
	DocumentID *uuid.UUID       `json:"document_id,omitempty"`
}

// OverdueCandidate is an open item whose due date has passed.
type OverdueCandidate struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	RuleTitle string     `db:"rule_title"`
	DueDate   *time.Time `db:"due_date"`
}

func NewChecklistStats(items []ChecklistEntry) ChecklistStats {
	stats := ChecklistStats{Total: len(items)}
	for _, item := range items {
		switch item.Status {
		case ComplianceCompleted:
			stats.Completed++
		case CompliancePending:
			stats.Pending++
		case ComplianceOverdue:
			stats.Overdue++
		case ComplianceInProgress:
			stats.InProgress++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(float64(stats.Completed)/float64(stats.Total)*100 + 0.5)
	}
	return stats
}
