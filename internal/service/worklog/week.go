package worklog

import (
	"fmt"
	"time"

	"northstar-student/internal/domain"
)

// WeekWindow returns the Monday 00:00 to Sunday 23:59:59.999999999 window
// containing date, in loc. A Sunday belongs to the week that began six days
// earlier.
func WeekWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	offset := 1 - int(d.Weekday())
	if d.Weekday() == time.Sunday {
		offset = -6
	}
	start := time.Date(d.Year(), d.Month(), d.Day()+offset, 0, 0, 0, 0, loc)
	end := time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	return start, end
}

// MonthWindow returns the first and last instant of the calendar month
// containing date, in loc.
func MonthWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month()+1, 0, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	return start, end
}

// Classify maps a week total to an alert: above the cap is CRITICAL, from the
// warning threshold up to the cap is WARNING, anything lower is nil.
func Classify(total float64) *domain.WorkHourAlert {
	limit := domain.FormatHours(domain.WorkHourCapPerWeek)
	current := domain.FormatHours(total)

	switch {
	case total > domain.WorkHourCapPerWeek:
		return &domain.WorkHourAlert{
			Level:      domain.AlertCritical,
			Message:    fmt.Sprintf("You have exceeded the %s-hour weekly work limit! Current total: %sh. This puts your study permit at risk.", limit, current),
			TotalHours: total,
		}
	case total >= domain.WorkHourWarningThreshold:
		return &domain.WorkHourAlert{
			Level:      domain.AlertWarning,
			Message:    fmt.Sprintf("You are approaching the %s-hour weekly limit. Current total: %sh. Remaining: %sh.", limit, current, domain.FormatHours(domain.WorkHourCapPerWeek-total)),
			TotalHours: total,
		}
	default:
		return nil
	}
}
