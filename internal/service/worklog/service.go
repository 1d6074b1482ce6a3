package worklog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/pkg/validation"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/notification"
)

var ErrEntryNotFound = errors.New("work log not found")

type Service interface {
	// Create persists an entry and classifies the resulting week total. A
	// failed alert notification is logged and never returned.
	Create(ctx context.Context, userID uuid.UUID, input domain.CreateWorkLogInput) (*domain.WorkLogResult, error)
	// WeekOf sums the Monday to Sunday week containing date.
	WeekOf(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.WeekSummary, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*domain.WorkLogDashboard, error)
	History(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (*domain.WorkLogHistory, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	logRepo  repository.WorkLogRepository
	notifier notification.Service
	clock    clockz.Clock
	loc      *time.Location
	log      *zap.Logger
}

func NewService(logRepo repository.WorkLogRepository, notifier notification.Service, clock clockz.Clock, loc *time.Location, log *zap.Logger) Service {
	return &service{
		logRepo:  logRepo,
		notifier: notifier,
		clock:    clock,
		loc:      loc,
		log:      log,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input domain.CreateWorkLogInput) (*domain.WorkLogResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	employer := strings.TrimSpace(input.Employer)
	if employer == "" {
		return nil, validation.New("employer", "Employer name required")
	}
	date, err := domain.ParseDate(input.Date, s.loc)
	if err != nil {
		return nil, validation.New("date", "Valid date required")
	}

	entry := &domain.WorkLog{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		HoursWorked: input.HoursWorked,
		Employer:    employer,
		Notes:       input.Notes,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	week, err := s.WeekOf(ctx, userID, entry.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to compute week total: %w", err)
	}

	alert := Classify(week.TotalHours)
	if alert != nil {
		if err := s.notifier.NotifyWorkHourAlert(ctx, userID, alert); err != nil {
			s.log.Error("failed to create work hour notification",
				zap.String("user_id", userID.String()),
				zap.String("level", string(alert.Level)),
				zap.Float64("total_hours", week.TotalHours),
				zap.Error(err))
		}
	}

	return &domain.WorkLogResult{
		WorkLog:     entry,
		WeekSummary: *week,
		Alert:       alert,
	}, nil
}

func (s *service) WeekOf(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.WeekSummary, error) {
	start, end := WeekWindow(date, s.loc)
	logs, err := s.logRepo.ListBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	summary := domain.NewWeekSummary(start, end, logs)
	return &summary, nil
}

func (s *service) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.WorkLogDashboard, error) {
	now := s.clock.Now().In(s.loc)

	week, err := s.WeekOf(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	monthStart, monthEnd := MonthWindow(now, s.loc)
	monthLogs, err := s.logRepo.ListBetween(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, l := range monthLogs {
		total += l.HoursWorked
	}

	return &domain.WorkLogDashboard{
		CurrentWeek: *week,
		Month: domain.MonthSummary{
			TotalHours: total,
			LogCount:   len(monthLogs),
			Period:     fmt.Sprintf("%s to %s", monthStart.Format(domain.DateLayout), monthEnd.Format(domain.DateLayout)),
		},
		Cap:               domain.WorkHourCapPerWeek,
		RemainingThisWeek: week.Remaining,
	}, nil
}

func (s *service) History(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (*domain.WorkLogHistory, error) {
	params.Validate()

	logs, total, err := s.logRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return &domain.WorkLogHistory{
		Logs:       logs,
		Pagination: domain.NewPagination(params, total),
	}, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	entry, err := s.logRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrEntryNotFound
	}
	return s.logRepo.Delete(ctx, userID, id)
}
