package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"
)

const sweepLockKey = "jobs:deadline-sweep:lock"

// Scheduler runs the deadline sweep once a day. With Redis configured, a
// run lock keeps replicas from sweeping at the same time.
type Scheduler struct {
	sweep     *DeadlineSweep
	redis     *redis.Client
	clock     clockz.Clock
	scheduler *gocron.Scheduler
	at        string
	lockTTL   time.Duration
	log       *zap.Logger
}

func NewScheduler(sweep *DeadlineSweep, redis *redis.Client, clock clockz.Clock, loc *time.Location, at string, lockTTL time.Duration, log *zap.Logger) *Scheduler {
	scheduler := gocron.NewScheduler(loc)
	scheduler.SingletonModeAll()

	return &Scheduler{
		sweep:     sweep,
		redis:     redis,
		clock:     clock,
		scheduler: scheduler,
		at:        at,
		lockTTL:   lockTTL,
		log:       log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.at).Do(s.RunOnce); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("deadline sweep scheduled", zap.String("at", s.at))
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce sweeps unless another holder owns the run lock.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTTL)
	defer cancel()

	release, ok := s.acquire(ctx)
	if !ok {
		return
	}
	defer release()

	s.sweep.Run(ctx, s.clock.Now())
}

func (s *Scheduler) acquire(ctx context.Context) (func(), bool) {
	if s.redis == nil {
		return func() {}, true
	}

	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, sweepLockKey, token, s.lockTTL).Result()
	if err != nil {
		s.log.Warn("sweep lock unavailable, running without it", zap.Error(err))
		return func() {}, true
	}
	if !ok {
		s.log.Info("deadline sweep already running elsewhere")
		return nil, false
	}

	return func() {
		if current, err := s.redis.Get(context.Background(), sweepLockKey).Result(); err == nil && current == token {
			s.redis.Del(context.Background(), sweepLockKey)
		}
	}, true
}
