package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/jobs"
	"northstar-student/internal/mocks"
	"northstar-student/internal/repository"
)

type memPermits struct {
	repository.PermitRepository

	mu        sync.Mutex
	permits   []*domain.PermitReminder
	failClaim map[uuid.UUID]bool
}

func (m *memPermits) ListDueForReminder(_ context.Context, cp domain.ReminderCheckpoint, from, to time.Time) ([]domain.PermitReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.PermitReminder
	for _, p := range m.permits {
		if p.ExpiryDate.Before(from) || p.ExpiryDate.After(to) {
			continue
		}
		if p.Status == domain.PermitExpired || cp.Sent(&p.StudyPermit) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *memPermits) MarkReminderSent(_ context.Context, id uuid.UUID, cp domain.ReminderCheckpoint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failClaim[id] {
		return false, errors.New("connection reset")
	}
	for _, p := range m.permits {
		if p.ID == id {
			if cp.Sent(&p.StudyPermit) {
				return false, nil
			}
			cp.Mark(&p.StudyPermit)
			return true, nil
		}
	}
	return false, nil
}

func (m *memPermits) MarkExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, p := range m.permits {
		if p.ExpiryDate.Before(now) && p.Status != domain.PermitExpired {
			p.Status = domain.PermitExpired
			n++
		}
	}
	return n, nil
}

func (m *memPermits) MarkExpiringSoon(_ context.Context, now, horizon time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, p := range m.permits {
		if p.Status == domain.PermitActive && !p.ExpiryDate.Before(now) && !p.ExpiryDate.After(horizon) {
			p.Status = domain.PermitExpiringSoon
			n++
		}
	}
	return n, nil
}

func (m *memPermits) get(id uuid.UUID) domain.StudyPermit {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.permits {
		if p.ID == id {
			return p.StudyPermit
		}
	}
	return domain.StudyPermit{}
}

type memItems struct {
	repository.ComplianceItemRepository

	mu    sync.Mutex
	items []*domain.ComplianceItem
	title string
}

func (m *memItems) ListOverdueCandidates(_ context.Context, now time.Time) ([]domain.OverdueCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.OverdueCandidate
	for _, it := range m.items {
		if it.DueDate != nil && it.DueDate.Before(now) && it.Status.IsOpen() {
			out = append(out, domain.OverdueCandidate{ID: it.ID, UserID: it.UserID, DueDate: it.DueDate, RuleTitle: m.title})
		}
	}
	return out, nil
}

func (m *memItems) MarkOverdue(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range m.items {
		if it.ID == id && it.Status.IsOpen() && it.DueDate != nil && it.DueDate.Before(now) {
			it.Status = domain.ComplianceOverdue
			return true, nil
		}
	}
	return false, nil
}

var now = time.Date(2031, time.March, 10, 8, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2031, time.March, 10+offset, 0, 0, 0, 0, time.UTC)
}

func newPermit(expiry time.Time, status domain.PermitStatus) *domain.PermitReminder {
	return &domain.PermitReminder{
		StudyPermit: domain.StudyPermit{ID: uuid.New(), UserID: uuid.New(), ExpiryDate: expiry, Status: status},
		Email:       "student@example.com",
		FirstName:   "Amara",
	}
}

func newSweep(permits *memPermits, items *memItems) (*mocks.NotificationService, *mocks.EmailService, *jobs.DeadlineSweep) {
	notifier := new(mocks.NotificationService)
	emailSvc := new(mocks.EmailService)
	return notifier, emailSvc, jobs.NewDeadlineSweep(permits, items, notifier, emailSvc, time.UTC, zap.NewNop())
}

func TestSweep_CheckpointSentOnce(t *testing.T) {
	ctx := context.Background()
	p := newPermit(day(90), domain.PermitActive)
	permits := &memPermits{permits: []*domain.PermitReminder{p}}
	notifier, emailSvc, sweep := newSweep(permits, &memItems{})

	notifier.On("NotifyPermitCheckpoint", ctx, p.UserID, p.ID, p.ExpiryDate, domain.Checkpoint90).Return(nil).Once()
	emailSvc.On("SendPermitExpiryReminder", ctx, "student@example.com", "Amara", p.ExpiryDate, 90).Return(nil).Once()

	report := sweep.Run(ctx, now)
	assert.Equal(t, 1, report.Reminders)
	assert.Equal(t, int64(1), report.ExpiringSoon)
	assert.True(t, permits.get(p.ID).ReminderSent90)

	second := sweep.Run(ctx, now)
	assert.Equal(t, jobs.SweepReport{}, second)

	notifier.AssertExpectations(t)
	emailSvc.AssertExpectations(t)
}

func TestSweep_EachCheckpointMatchesItsOwnDay(t *testing.T) {
	ctx := context.Background()
	p60 := newPermit(day(60).Add(23*time.Hour), domain.PermitExpiringSoon)
	p30 := newPermit(day(30), domain.PermitExpiringSoon)
	p45 := newPermit(day(45), domain.PermitExpiringSoon)
	permits := &memPermits{permits: []*domain.PermitReminder{p60, p30, p45}}
	notifier, emailSvc, sweep := newSweep(permits, &memItems{})

	notifier.On("NotifyPermitCheckpoint", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	emailSvc.On("SendPermitExpiryReminder", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	report := sweep.Run(ctx, now)
	assert.Equal(t, 2, report.Reminders)
	assert.True(t, permits.get(p60.ID).ReminderSent60)
	assert.True(t, permits.get(p30.ID).ReminderSent30)
	assert.False(t, permits.get(p45.ID).ReminderSent30)
	notifier.AssertCalled(t, "NotifyPermitCheckpoint", ctx, p60.UserID, p60.ID, p60.ExpiryDate, domain.Checkpoint60)
	notifier.AssertCalled(t, "NotifyPermitCheckpoint", ctx, p30.UserID, p30.ID, p30.ExpiryDate, domain.Checkpoint30)
}

func TestSweep_EmailFailureStillSetsFlag(t *testing.T) {
	ctx := context.Background()
	p := newPermit(day(30), domain.PermitExpiringSoon)
	permits := &memPermits{permits: []*domain.PermitReminder{p}}
	notifier, emailSvc, sweep := newSweep(permits, &memItems{})

	notifier.On("NotifyPermitCheckpoint", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	emailSvc.On("SendPermitExpiryReminder", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	report := sweep.Run(ctx, now)
	assert.Equal(t, 1, report.Reminders)
	assert.Zero(t, report.Failures)
	assert.True(t, permits.get(p.ID).ReminderSent30)

	sweep.Run(ctx, now)
	emailSvc.AssertNumberOfCalls(t, "SendPermitExpiryReminder", 1)
}

func TestSweep_ExpiredPermitsGetNoReminder(t *testing.T) {
	ctx := context.Background()
	p := newPermit(day(90), domain.PermitExpired)
	old := newPermit(day(-1), domain.PermitExpiringSoon)
	permits := &memPermits{permits: []*domain.PermitReminder{p, old}}
	notifier, _, sweep := newSweep(permits, &memItems{})

	report := sweep.Run(ctx, now)
	assert.Zero(t, report.Reminders)
	assert.Equal(t, int64(1), report.Expired)
	assert.Equal(t, domain.PermitExpired, permits.get(old.ID).Status)
	notifier.AssertNotCalled(t, "NotifyPermitCheckpoint", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSweep_FailingRecordDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()
	bad := newPermit(day(60), domain.PermitExpiringSoon)
	good := newPermit(day(60), domain.PermitExpiringSoon)
	permits := &memPermits{
		permits:   []*domain.PermitReminder{bad, good},
		failClaim: map[uuid.UUID]bool{bad.ID: true},
	}
	notifier, emailSvc, sweep := newSweep(permits, &memItems{})

	notifier.On("NotifyPermitCheckpoint", ctx, good.UserID, good.ID, mock.Anything, domain.Checkpoint60).Return(nil).Once()
	emailSvc.On("SendPermitExpiryReminder", ctx, mock.Anything, mock.Anything, mock.Anything, 60).Return(nil).Once()

	report := sweep.Run(ctx, now)
	assert.Equal(t, 1, report.Reminders)
	assert.Equal(t, 1, report.Failures)
	assert.True(t, permits.get(good.ID).ReminderSent60)
	assert.False(t, permits.get(bad.ID).ReminderSent60)
}

func TestSweep_NotificationFailureCountsButContinues(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	past := now.Add(-48 * time.Hour)
	first := &domain.ComplianceItem{ID: uuid.New(), UserID: userID, Status: domain.CompliancePending, DueDate: &past}
	second := &domain.ComplianceItem{ID: uuid.New(), UserID: userID, Status: domain.ComplianceInProgress, DueDate: &past}
	items := &memItems{items: []*domain.ComplianceItem{first, second}, title: "Renew Study Permit"}
	notifier, _, sweep := newSweep(&memPermits{}, items)

	notifier.On("NotifyComplianceOverdue", ctx, userID, first.ID, "Renew Study Permit").Return(errors.New("insert failed")).Once()
	notifier.On("NotifyComplianceOverdue", ctx, userID, second.ID, "Renew Study Permit").Return(nil).Once()

	report := sweep.Run(ctx, now)
	assert.Equal(t, 2, report.Overdue)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, domain.ComplianceOverdue, first.Status)
	assert.Equal(t, domain.ComplianceOverdue, second.Status)
}

func TestSweep_OverdueIsNotRenotified(t *testing.T) {
	ctx := context.Background()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	open := &domain.ComplianceItem{ID: uuid.New(), UserID: uuid.New(), Status: domain.CompliancePending, DueDate: &past}
	done := &domain.ComplianceItem{ID: uuid.New(), UserID: uuid.New(), Status: domain.ComplianceCompleted, DueDate: &past}
	na := &domain.ComplianceItem{ID: uuid.New(), UserID: uuid.New(), Status: domain.ComplianceNotApplicable, DueDate: &past}
	later := &domain.ComplianceItem{ID: uuid.New(), UserID: uuid.New(), Status: domain.CompliancePending, DueDate: &future}
	noDate := &domain.ComplianceItem{ID: uuid.New(), UserID: uuid.New(), Status: domain.CompliancePending}
	items := &memItems{items: []*domain.ComplianceItem{open, done, na, later, noDate}, title: "Get SIN"}
	notifier, _, sweep := newSweep(&memPermits{}, items)

	notifier.On("NotifyComplianceOverdue", ctx, open.UserID, open.ID, "Get SIN").Return(nil).Once()

	first := sweep.Run(ctx, now)
	require.Equal(t, 1, first.Overdue)

	second := sweep.Run(ctx, now)
	assert.Zero(t, second.Overdue)
	notifier.AssertNumberOfCalls(t, "NotifyComplianceOverdue", 1)
	assert.Equal(t, domain.ComplianceCompleted, done.Status)
	assert.Equal(t, domain.CompliancePending, later.Status)
}

func TestSweep_ConcurrentRunsSendOnce(t *testing.T) {
	ctx := context.Background()
	p := newPermit(day(90), domain.PermitActive)
	permits := &memPermits{permits: []*domain.PermitReminder{p}}
	notifier, emailSvc, sweep := newSweep(permits, &memItems{})

	notifier.On("NotifyPermitCheckpoint", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	emailSvc.On("SendPermitExpiryReminder", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sweep.Run(ctx, now)
		}()
	}
	wg.Wait()

	notifier.AssertNumberOfCalls(t, "NotifyPermitCheckpoint", 1)
	emailSvc.AssertNumberOfCalls(t, "SendPermitExpiryReminder", 1)
}
