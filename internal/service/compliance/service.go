package compliance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/pkg/validation"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/catalog"
	"northstar-student/internal/service/deadline"
)

var (
	ErrAlreadyInitialized = errors.New("checklist already initialized")
	ErrNoRules            = errors.New("no compliance rules found, please contact admin")
	ErrItemNotFound       = errors.New("compliance item not found")
	ErrDocumentNotFound   = errors.New("document not found")
)

type Service interface {
	// Initialize creates one PENDING item per active rule and returns how
	// many were created. It succeeds at most once per user.
	Initialize(ctx context.Context, userID uuid.UUID) (int, error)
	GetChecklist(ctx context.Context, userID uuid.UUID) (*domain.Checklist, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, input domain.UpdateComplianceItemInput) (*domain.ChecklistEntry, error)
	ListRules(ctx context.Context) ([]domain.ComplianceRule, error)
}

type service struct {
	itemRepo   repository.ComplianceItemRepository
	ruleRepo   repository.RuleRepository
	permitRepo repository.PermitRepository
	docRepo    repository.DocumentRepository
	catalog    catalog.Service
	clock      clockz.Clock
	loc        *time.Location
	log        *zap.Logger
}

func NewService(
	itemRepo repository.ComplianceItemRepository,
	ruleRepo repository.RuleRepository,
	permitRepo repository.PermitRepository,
	docRepo repository.DocumentRepository,
	catalogSvc catalog.Service,
	clock clockz.Clock,
	loc *time.Location,
	log *zap.Logger,
) Service {
	return &service{
		itemRepo:   itemRepo,
		ruleRepo:   ruleRepo,
		permitRepo: permitRepo,
		docRepo:    docRepo,
		catalog:    catalogSvc,
		clock:      clock,
		loc:        loc,
		log:        log,
	}
}

func (s *service) Initialize(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.itemRepo.CountByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrAlreadyInitialized
	}

	rules, err := s.catalog.ActiveRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load rules: %w", err)
	}
	if len(rules) == 0 {
		return 0, ErrNoRules
	}

	permit, err := s.permitRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load permit: %w", err)
	}
	var permitExpiry *time.Time
	if permit != nil {
		expiry := permit.ExpiryDate.In(s.loc)
		permitExpiry = &expiry
	}

	now := s.clock.Now().In(s.loc)
	items := make([]domain.ComplianceItem, 0, len(rules))
	for _, rule := range rules {
		due := deadline.Compute(rule, permitExpiry, now)
		if due.IsNone() && rule.DeadlineType == domain.DeadlineRelativeToPermit {
			s.log.Info("no permit on file, item has no deadline",
				zap.String("user_id", userID.String()), zap.String("rule_id", rule.ID))
		}
		items = append(items, domain.ComplianceItem{
			ID:      uuid.New(),
			UserID:  userID,
			RuleID:  rule.ID,
			Status:  domain.CompliancePending,
			DueDate: due.Ptr(),
		})
	}

	if err := s.itemRepo.CreateChecklist(ctx, userID, items); err != nil {
		if errors.Is(err, repository.ErrChecklistExists) {
			return 0, ErrAlreadyInitialized
		}
		return 0, err
	}

	return len(items), nil
}

func (s *service) GetChecklist(ctx context.Context, userID uuid.UUID) (*domain.Checklist, error) {
	entries, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Checklist{
		Items: entries,
		Stats: domain.NewChecklistStats(entries),
	}, nil
}

// UpdateItem applies a user-driven transition. OVERDUE is reserved for the
// sweep. The due date is never recomputed.
func (s *service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, input domain.UpdateComplianceItemInput) (*domain.ChecklistEntry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if input.DocumentID != nil {
		doc, err := s.docRepo.GetByID(ctx, userID, *input.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, ErrDocumentNotFound
		}
		item.DocumentID = input.DocumentID
	}
	if input.Notes != nil {
		item.Notes = input.Notes
	}

	item.Status = input.Status
	if input.Status == domain.ComplianceCompleted {
		now := s.clock.Now()
		item.CompletedAt = &now
	} else {
		item.CompletedAt = nil
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.GetByID(ctx, item.RuleID)
	if err != nil {
		return nil, err
	}
	entry := &domain.ChecklistEntry{ComplianceItem: *item}
	if rule != nil {
		entry.Rule = *rule
	}
	return entry, nil
}

func (s *service) ListRules(ctx context.Context) ([]domain.ComplianceRule, error) {
	return s.catalog.ActiveRules(ctx)
}
