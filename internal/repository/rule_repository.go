package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"northstar-student/internal/domain"
)

type RuleRepository interface {
	Upsert(ctx context.Context, rule *domain.ComplianceRule) error
	GetByID(ctx context.Context, id string) (*domain.ComplianceRule, error)
	ListActive(ctx context.Context) ([]domain.ComplianceRule, error)
}

type ruleRepository struct {
	db *sqlx.DB
}

func NewRuleRepository(db *sqlx.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Upsert(ctx context.Context, rule *domain.ComplianceRule) error {
	query := `
		INSERT INTO compliance_rules (id, title, description, category, deadline_type, deadline_days, priority, is_active, help_url)
		VALUES (:id, :title, :description, :category, :deadline_type, :deadline_days, :priority, :is_active, :help_url)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			deadline_type = EXCLUDED.deadline_type,
			deadline_days = EXCLUDED.deadline_days,
			priority = EXCLUDED.priority,
			is_active = EXCLUDED.is_active,
			help_url = EXCLUDED.help_url,
			updated_at = NOW()`

	_, err := r.db.NamedExecContext(ctx, query, rule)
	return err
}

func (r *ruleRepository) GetByID(ctx context.Context, id string) (*domain.ComplianceRule, error) {
	var rule domain.ComplianceRule
	query := `SELECT * FROM compliance_rules WHERE id = $1`

	err := r.db.GetContext(ctx, &rule, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) ListActive(ctx context.Context) ([]domain.ComplianceRule, error) {
	rules := []domain.ComplianceRule{}
	query := `SELECT * FROM compliance_rules WHERE is_active = true ORDER BY priority DESC, id`
	err := r.db.SelectContext(ctx, &rules, query)
	return rules, err
}
