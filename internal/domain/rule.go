package domain

import "time"

type ComplianceCategory string

const (
	CategoryStudyPermit       ComplianceCategory = "STUDY_PERMIT"
	CategoryWorkAuthorization ComplianceCategory = "WORK_AUTHORIZATION"
	CategoryEnrollment        ComplianceCategory = "ENROLLMENT"
	CategoryHealthInsurance   ComplianceCategory = "HEALTH_INSURANCE"
	CategoryTaxes             ComplianceCategory = "TAXES"
	CategoryHousing           ComplianceCategory = "HOUSING"
	CategoryReporting         ComplianceCategory = "REPORTING"
)

func (c ComplianceCategory) IsValid() bool {
	switch c {
	case CategoryStudyPermit, CategoryWorkAuthorization, CategoryEnrollment,
		CategoryHealthInsurance, CategoryTaxes, CategoryHousing, CategoryReporting:
		return true
	default:
		return false
	}
}

// DeadlineType selects how a rule's DeadlineDays is interpreted.
type DeadlineType string

const (
	DeadlineOneTime          DeadlineType = "ONE_TIME"
	DeadlineFixedDate        DeadlineType = "FIXED_DATE"
	DeadlineRelativeToPermit DeadlineType = "RELATIVE_TO_PERMIT"
	DeadlineRecurring        DeadlineType = "RECURRING"
)

// ComplianceRule is an immutable catalog entry.
type ComplianceRule struct {
	ID           string             `json:"id" db:"id"`
	Title        string             `json:"title" db:"title"`
	Description  string             `json:"description" db:"description"`
	Category     ComplianceCategory `json:"category" db:"category"`
	DeadlineType DeadlineType       `json:"deadline_type" db:"deadline_type"`
	DeadlineDays *int               `json:"deadline_days,omitempty" db:"deadline_days"`
	Priority     int                `json:"priority" db:"priority"`
	IsActive     bool               `json:"is_active" db:"is_active"`
	HelpURL      *string            `json:"help_url,omitempty" db:"help_url"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" db:"updated_at"`
}
