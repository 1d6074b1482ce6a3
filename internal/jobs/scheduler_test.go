package jobs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/jobs"
)

func TestScheduler_RunOnceWithoutRedis(t *testing.T) {
	clock := clockz.NewFakeClock()
	past := clock.Now().Add(-time.Hour)
	item := &domain.ComplianceItem{Status: domain.CompliancePending, DueDate: &past}
	items := &memItems{items: []*domain.ComplianceItem{item}, title: "Get SIN"}

	notifier, _, sweep := newSweep(&memPermits{}, items)
	notifier.On("NotifyComplianceOverdue", mock.Anything, mock.Anything, mock.Anything, "Get SIN").Return(nil).Once()

	scheduler := jobs.NewScheduler(sweep, nil, clock, time.UTC, "08:00", time.Minute, zap.NewNop())
	scheduler.RunOnce()

	assert.Equal(t, domain.ComplianceOverdue, item.Status)
	notifier.AssertExpectations(t)
}
