package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"northstar-student/internal/domain"
	"northstar-student/internal/repository"
)

const (
	activeRulesKey = "catalog:rules:active"
	activeRulesTTL = time.Hour
)

type Service interface {
	// ActiveRules returns active rules, highest priority first.
	ActiveRules(ctx context.Context) ([]domain.ComplianceRule, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	ruleRepo repository.RuleRepository
	redis    *redis.Client
	log      *zap.Logger
}

func NewService(ruleRepo repository.RuleRepository, redis *redis.Client, log *zap.Logger) Service {
	return &service{
		ruleRepo: ruleRepo,
		redis:    redis,
		log:      log,
	}
}

func (s *service) ActiveRules(ctx context.Context) ([]domain.ComplianceRule, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, activeRulesKey).Result(); err == nil {
			var rules []domain.ComplianceRule
			if json.Unmarshal([]byte(cached), &rules) == nil {
				return rules, nil
			}
		}
	}

	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil && len(rules) > 0 {
		if data, err := json.Marshal(rules); err == nil {
			if err := s.redis.Set(ctx, activeRulesKey, data, activeRulesTTL).Err(); err != nil {
				s.log.Warn("failed to cache active rules", zap.Error(err))
			}
		}
	}

	return rules, nil
}

func (s *service) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, activeRulesKey).Err()
}
