package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"northstar-student/internal/domain"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type PermitRepository struct {
	mock.Mock
}

func (m *PermitRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.StudyPermit, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyPermit), args.Error(1)
}

func (m *PermitRepository) Upsert(ctx context.Context, permit *domain.StudyPermit) error {
	args := m.Called(ctx, permit)
	return args.Error(0)
}

func (m *PermitRepository) ListDueForReminder(ctx context.Context, cp domain.ReminderCheckpoint, from, to time.Time) ([]domain.PermitReminder, error) {
	args := m.Called(ctx, cp, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PermitReminder), args.Error(1)
}

func (m *PermitRepository) MarkReminderSent(ctx context.Context, permitID uuid.UUID, cp domain.ReminderCheckpoint) (bool, error) {
	args := m.Called(ctx, permitID, cp)
	return args.Bool(0), args.Error(1)
}

func (m *PermitRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PermitRepository) MarkExpiringSoon(ctx context.Context, now, horizon time.Time) (int64, error) {
	args := m.Called(ctx, now, horizon)
	return args.Get(0).(int64), args.Error(1)
}

type WorkLogRepository struct {
	mock.Mock
}

func (m *WorkLogRepository) Create(ctx context.Context, log *domain.WorkLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *WorkLogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.WorkLog, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkLog), args.Error(1)
}

func (m *WorkLogRepository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.WorkLog, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkLog), args.Error(1)
}

func (m *WorkLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.WorkLog, int64, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.WorkLog), args.Get(1).(int64), args.Error(2)
}

func (m *WorkLogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	args := m.Called(ctx, notif)
	return args.Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *DocumentRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *DocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID, docType *domain.DocumentType) ([]domain.Document, error) {
	args := m.Called(ctx, userID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type RuleRepository struct {
	mock.Mock
}

func (m *RuleRepository) Upsert(ctx context.Context, rule *domain.ComplianceRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *RuleRepository) GetByID(ctx context.Context, id string) (*domain.ComplianceRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceRule), args.Error(1)
}

func (m *RuleRepository) ListActive(ctx context.Context) ([]domain.ComplianceRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ComplianceRule), args.Error(1)
}

type ComplianceItemRepository struct {
	mock.Mock
}

func (m *ComplianceItemRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *ComplianceItemRepository) CreateChecklist(ctx context.Context, userID uuid.UUID, items []domain.ComplianceItem) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

func (m *ComplianceItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ChecklistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChecklistEntry), args.Error(1)
}

func (m *ComplianceItemRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ComplianceItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceItem), args.Error(1)
}

func (m *ComplianceItemRepository) Update(ctx context.Context, item *domain.ComplianceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ComplianceItemRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.OverdueCandidate, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueCandidate), args.Error(1)
}

func (m *ComplianceItemRepository) MarkOverdue(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, id, now)
	return args.Bool(0), args.Error(1)
}
