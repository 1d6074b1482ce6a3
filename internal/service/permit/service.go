package permit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/pkg/validation"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/notification"
)

type Service interface {
	// Upsert stores the user's single permit and classifies it. An
	// EXPIRING_SOON permit triggers one in-app notification per call.
	Upsert(ctx context.Context, userID uuid.UUID, input domain.UpsertPermitInput) (*domain.PermitView, error)
	Get(ctx context.Context, userID uuid.UUID) (*domain.PermitView, error)
}

type service struct {
	permitRepo repository.PermitRepository
	notifier   notification.Service
	clock      clockz.Clock
	loc        *time.Location
	log        *zap.Logger
}

func NewService(permitRepo repository.PermitRepository, notifier notification.Service, clock clockz.Clock, loc *time.Location, log *zap.Logger) Service {
	return &service{
		permitRepo: permitRepo,
		notifier:   notifier,
		clock:      clock,
		loc:        loc,
		log:        log,
	}
}

func (s *service) Upsert(ctx context.Context, userID uuid.UUID, input domain.UpsertPermitInput) (*domain.PermitView, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	expiry, err := domain.ParseDate(input.ExpiryDate, s.loc)
	if err != nil {
		return nil, validation.New("expiry_date", "Valid expiry date required")
	}

	var issue *time.Time
	if input.IssueDate != nil && *input.IssueDate != "" {
		t, err := domain.ParseDate(*input.IssueDate, s.loc)
		if err != nil {
			return nil, validation.New("issue_date", "Valid issue date required")
		}
		issue = &t
	}

	conditions := pq.StringArray(input.Conditions)
	if conditions == nil {
		conditions = pq.StringArray{}
	}

	now := s.clock.Now()
	days := domain.DaysUntil(expiry, now)
	status := domain.PermitStatusAt(expiry, now)

	permit := &domain.StudyPermit{
		ID:           uuid.New(),
		UserID:       userID,
		PermitNumber: input.PermitNumber,
		IssueDate:    issue,
		ExpiryDate:   expiry,
		Status:       status,
		Conditions:   conditions,
	}
	if err := s.permitRepo.Upsert(ctx, permit); err != nil {
		return nil, err
	}

	if status == domain.PermitExpiringSoon {
		if err := s.notifier.NotifyPermitExpiringSoon(ctx, userID, expiry, days); err != nil {
			s.log.Error("failed to create permit expiry notification",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return &domain.PermitView{
		Permit:          permit,
		DaysUntilExpiry: &days,
		Status:          status,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*domain.PermitView, error) {
	permit, err := s.permitRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if permit == nil {
		return &domain.PermitView{Message: "No study permit on file"}, nil
	}

	days := domain.DaysUntil(permit.ExpiryDate, s.clock.Now())
	return &domain.PermitView{
		Permit:          permit,
		DaysUntilExpiry: &days,
		Status:          permit.Status,
	}, nil
}
