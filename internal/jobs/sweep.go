package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/email"
	"northstar-student/internal/service/notification"
)

// SweepReport counts what a single run changed.
type SweepReport struct {
	Reminders    int   `json:"reminders"`
	Expired      int64 `json:"expired"`
	ExpiringSoon int64 `json:"expiring_soon"`
	Overdue      int   `json:"overdue"`
	Failures     int   `json:"failures"`
}

// DeadlineSweep reconciles time-dependent state: permit checkpoint reminders,
// permit status and overdue compliance items. Every pass is idempotent.
type DeadlineSweep struct {
	permitRepo repository.PermitRepository
	itemRepo   repository.ComplianceItemRepository
	notifier   notification.Service
	email      email.Service
	loc        *time.Location
	log        *zap.Logger
}

func NewDeadlineSweep(
	permitRepo repository.PermitRepository,
	itemRepo repository.ComplianceItemRepository,
	notifier notification.Service,
	emailService email.Service,
	loc *time.Location,
	log *zap.Logger,
) *DeadlineSweep {
	return &DeadlineSweep{
		permitRepo: permitRepo,
		itemRepo:   itemRepo,
		notifier:   notifier,
		email:      emailService,
		loc:        loc,
		log:        log,
	}
}

// Run executes all passes against now. Individual record failures are logged
// and counted; they never stop the run.
func (s *DeadlineSweep) Run(ctx context.Context, now time.Time) SweepReport {
	var report SweepReport

	for _, cp := range domain.ReminderCheckpoints {
		s.sendCheckpoint(ctx, now, cp, &report)
	}
	s.updatePermitStatuses(ctx, now, &report)
	s.markOverdue(ctx, now, &report)

	s.log.Info("deadline sweep finished",
		zap.Time("now", now),
		zap.Int("reminders", report.Reminders),
		zap.Int64("expired", report.Expired),
		zap.Int64("expiring_soon", report.ExpiringSoon),
		zap.Int("overdue", report.Overdue),
		zap.Int("failures", report.Failures),
	)
	return report
}

func (s *DeadlineSweep) sendCheckpoint(ctx context.Context, now time.Time, cp domain.ReminderCheckpoint, report *SweepReport) {
	from, to := checkpointWindow(now, cp, s.loc)

	permits, err := s.permitRepo.ListDueForReminder(ctx, cp, from, to)
	if err != nil {
		s.log.Error("failed to list permits for reminder", zap.Int("checkpoint", cp.Days()), zap.Error(err))
		report.Failures++
		return
	}

	for i := range permits {
		p := &permits[i]
		log := s.log.With(zap.String("permit_id", p.ID.String()), zap.Int("checkpoint", cp.Days()))

		// The flag flip is the claim; a run that loses it sends nothing.
		claimed, err := s.permitRepo.MarkReminderSent(ctx, p.ID, cp)
		if err != nil {
			log.Error("failed to claim permit reminder", zap.Error(err))
			report.Failures++
			continue
		}
		if !claimed {
			continue
		}

		if err := s.notifier.NotifyPermitCheckpoint(ctx, p.UserID, p.ID, p.ExpiryDate, cp); err != nil {
			log.Error("failed to create permit reminder notification", zap.Error(err))
			report.Failures++
			continue
		}

		if err := s.email.SendPermitExpiryReminder(ctx, p.Email, p.FirstName, p.ExpiryDate, cp.Days()); err != nil {
			log.Warn("failed to send permit reminder email", zap.Error(err))
		}
		report.Reminders++
	}
}

func (s *DeadlineSweep) updatePermitStatuses(ctx context.Context, now time.Time, report *SweepReport) {
	expired, err := s.permitRepo.MarkExpired(ctx, now)
	if err != nil {
		s.log.Error("failed to mark expired permits", zap.Error(err))
		report.Failures++
	}
	report.Expired = expired

	soon, err := s.permitRepo.MarkExpiringSoon(ctx, now, now.AddDate(0, 0, domain.ExpiringSoonDays))
	if err != nil {
		s.log.Error("failed to mark expiring permits", zap.Error(err))
		report.Failures++
	}
	report.ExpiringSoon = soon
}

func (s *DeadlineSweep) markOverdue(ctx context.Context, now time.Time, report *SweepReport) {
	candidates, err := s.itemRepo.ListOverdueCandidates(ctx, now)
	if err != nil {
		s.log.Error("failed to list overdue candidates", zap.Error(err))
		report.Failures++
		return
	}

	for _, c := range candidates {
		log := s.log.With(zap.String("item_id", c.ID.String()))

		moved, err := s.itemRepo.MarkOverdue(ctx, c.ID, now)
		if err != nil {
			log.Error("failed to mark item overdue", zap.Error(err))
			report.Failures++
			continue
		}
		if !moved {
			continue
		}
		report.Overdue++

		if err := s.notifier.NotifyComplianceOverdue(ctx, c.UserID, c.ID, c.RuleTitle); err != nil {
			log.Error("failed to create overdue notification", zap.Error(err))
			report.Failures++
		}
	}
}

// checkpointWindow returns the local calendar day cp days after now's day.
func checkpointWindow(now time.Time, cp domain.ReminderCheckpoint, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day()+cp.Days(), 0, 0, 0, 0, loc)
	end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	return start, end
}
