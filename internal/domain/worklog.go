package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	// WorkHourCapPerWeek is the off-campus weekly cap during academic sessions.
	WorkHourCapPerWeek = 24.0
	// WorkHourWarningThreshold is where the approaching-limit warning starts.
	WorkHourWarningThreshold = 20.0
)

const DateLayout = "2006-01-02"

type WorkLog struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Date        time.Time `json:"date" db:"date"`
	HoursWorked float64   `json:"hours_worked" db:"hours_worked"`
	Employer    string    `json:"employer" db:"employer"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateWorkLogInput struct {
	Date        string  `json:"date" validate:"required"`
	HoursWorked float64 `json:"hours_worked" validate:"gte=0.25,lte=24"`
	Employer    string  `json:"employer" validate:"required"`
	Notes       *string `json:"notes,omitempty"`
}

// WeekSummary is derived from the entries in [WeekStart, WeekEnd]; never stored.
type WeekSummary struct {
	WeekStart   time.Time
	WeekEnd     time.Time
	TotalHours  float64
	Remaining   float64
	IsOverLimit bool
	IsNearLimit bool
	Logs        []WorkLog
}

func NewWeekSummary(start, end time.Time, logs []WorkLog) WeekSummary {
	total := 0.0
	for _, l := range logs {
		total += l.HoursWorked
	}
	remaining := WorkHourCapPerWeek - total
	if remaining < 0 {
		remaining = 0
	}
	if logs == nil {
		logs = []WorkLog{}
	}
	return WeekSummary{
		WeekStart:   start,
		WeekEnd:     end,
		TotalHours:  total,
		Remaining:   remaining,
		IsOverLimit: total > WorkHourCapPerWeek,
		IsNearLimit: total >= WorkHourWarningThreshold,
		Logs:        logs,
	}
}

func (w WeekSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		WeekStart   string    `json:"week_start"`
		WeekEnd     string    `json:"week_end"`
		TotalHours  float64   `json:"total_hours"`
		Remaining   float64   `json:"remaining"`
		IsOverLimit bool      `json:"is_over_limit"`
		IsNearLimit bool      `json:"is_near_limit"`
		Logs        []WorkLog `json:"logs"`
	}{
		WeekStart:   w.WeekStart.Format(DateLayout),
		WeekEnd:     w.WeekEnd.Format(DateLayout),
		TotalHours:  w.TotalHours,
		Remaining:   w.Remaining,
		IsOverLimit: w.IsOverLimit,
		IsNearLimit: w.IsNearLimit,
		Logs:        w.Logs,
	})
}

type MonthSummary struct {
	TotalHours float64 `json:"total_hours"`
	LogCount   int     `json:"log_count"`
	Period     string  `json:"period"`
}

type WorkLogDashboard struct {
	CurrentWeek       WeekSummary  `json:"current_week"`
	Month             MonthSummary `json:"month"`
	Cap               float64      `json:"cap"`
	RemainingThisWeek float64      `json:"remaining_this_week"`
}

type AlertLevel string

const (
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

type WorkHourAlert struct {
	Level      AlertLevel `json:"level"`
	Message    string     `json:"message"`
	TotalHours float64    `json:"-"`
}

type WorkLogResult struct {
	WorkLog     *WorkLog       `json:"work_log"`
	WeekSummary WeekSummary    `json:"week_summary"`
	Alert       *WorkHourAlert `json:"alert"`
}

// ParseDate accepts a calendar date (2006-01-02), interpreted at midnight in
// loc, or a full RFC 3339 timestamp.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// FormatHours renders hours rounded to two decimals in the shortest form:
// 21, 20.5, 3.75.
func FormatHours(h float64) string {
	return strconv.FormatFloat(math.Round(h*100)/100, 'f', -1, 64)
}
