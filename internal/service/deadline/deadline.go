// Package deadline computes due dates for compliance items from rule
// definitions. Everything here is pure: identical inputs give identical
// outputs.
package deadline

import (
	"time"

	"northstar-student/internal/domain"
)

// DefaultRecurringDays is used for RECURRING rules without DeadlineDays.
const DefaultRecurringDays = 90

// Due is either a concrete date or "no deadline".
type Due struct {
	at  time.Time
	set bool
}

// None is the "no deadline" result.
func None() Due {
	return Due{}
}

// On is a deadline at t.
func On(t time.Time) Due {
	return Due{at: t, set: true}
}

func (d Due) Get() (time.Time, bool) {
	return d.at, d.set
}

func (d Due) IsNone() bool {
	return !d.set
}

// Ptr returns the date for storage, nil when there is no deadline.
func (d Due) Ptr() *time.Time {
	if !d.set {
		return nil
	}
	t := d.at
	return &t
}

// Compute returns the due date for rule. Offsets are calendar days, so
// daylight saving changes and leap years do not shift the wall clock time.
// A missing permit or missing DeadlineDays resolves to None, never to an error.
func Compute(rule domain.ComplianceRule, permitExpiry *time.Time, now time.Time) Due {
	switch rule.DeadlineType {
	case domain.DeadlineOneTime:
		return None()

	case domain.DeadlineFixedDate:
		if rule.DeadlineDays == nil {
			return None()
		}
		return On(now.AddDate(0, 0, *rule.DeadlineDays))

	case domain.DeadlineRelativeToPermit:
		if permitExpiry == nil || rule.DeadlineDays == nil {
			return None()
		}
		return On(permitExpiry.AddDate(0, 0, -*rule.DeadlineDays))

	case domain.DeadlineRecurring:
		// Only the first instance; nothing renews a completed recurring item.
		days := DefaultRecurringDays
		if rule.DeadlineDays != nil {
			days = *rule.DeadlineDays
		}
		return On(now.AddDate(0, 0, days))

	default:
		return None()
	}
}
