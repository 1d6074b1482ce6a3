package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"northstar-student/internal/domain"
)

type ComplianceItemRepository interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// CreateChecklist inserts all items or none. It fails with
	// ErrChecklistExists when the user already has items, including items
	// committed by a concurrent call.
	CreateChecklist(ctx context.Context, userID uuid.UUID, items []domain.ComplianceItem) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ChecklistEntry, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ComplianceItem, error)
	Update(ctx context.Context, item *domain.ComplianceItem) error

	ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.OverdueCandidate, error)
	// MarkOverdue moves an open item to OVERDUE and reports whether this call
	// made the transition.
	MarkOverdue(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

type complianceItemRepository struct {
	db *sqlx.DB
}

func NewComplianceItemRepository(db *sqlx.DB) ComplianceItemRepository {
	return &complianceItemRepository{db: db}
}

func (r *complianceItemRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM compliance_items WHERE user_id = $1`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *complianceItemRepository) CreateChecklist(ctx context.Context, userID uuid.UUID, items []domain.ComplianceItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serializes initializations of the same user until commit.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "checklist:"+userID.String()); err != nil {
		return fmt.Errorf("failed to lock checklist: %w", err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM compliance_items WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if count > 0 {
		return ErrChecklistExists
	}

	query := `
		INSERT INTO compliance_items (id, user_id, rule_id, status, due_date)
		VALUES (:id, :user_id, :rule_id, :status, :due_date)`
	if _, err := tx.NamedExecContext(ctx, query, items); err != nil {
		if isUniqueViolation(err) {
			return ErrChecklistExists
		}
		return fmt.Errorf("failed to insert checklist items: %w", err)
	}

	return tx.Commit()
}

func (r *complianceItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ChecklistEntry, error) {
	query := `
		SELECT ci.*,
			r.id AS "rule.id", r.title AS "rule.title", r.description AS "rule.description",
			r.category AS "rule.category", r.deadline_type AS "rule.deadline_type",
			r.deadline_days AS "rule.deadline_days", r.priority AS "rule.priority",
			r.is_active AS "rule.is_active", r.help_url AS "rule.help_url",
			r.created_at AS "rule.created_at", r.updated_at AS "rule.updated_at"
		FROM compliance_items ci
		JOIN compliance_rules r ON r.id = ci.rule_id
		WHERE ci.user_id = $1
		ORDER BY r.priority DESC, ci.due_date ASC NULLS LAST`

	entries := []domain.ChecklistEntry{}
	err := r.db.SelectContext(ctx, &entries, query, userID)
	return entries, err
}

func (r *complianceItemRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.ComplianceItem, error) {
	var item domain.ComplianceItem
	query := `SELECT * FROM compliance_items WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &item, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update writes the user-editable fields. due_date is never rewritten.
func (r *complianceItemRepository) Update(ctx context.Context, item *domain.ComplianceItem) error {
	query := `
		UPDATE compliance_items
		SET status = $1, notes = $2, document_id = $3, completed_at = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		item.Status, item.Notes, item.DocumentID, item.CompletedAt, item.ID, item.UserID,
	).Scan(&item.UpdatedAt)
}

func (r *complianceItemRepository) ListOverdueCandidates(ctx context.Context, now time.Time) ([]domain.OverdueCandidate, error) {
	query := `
		SELECT ci.id, ci.user_id, ci.due_date, r.title AS rule_title
		FROM compliance_items ci
		JOIN compliance_rules r ON r.id = ci.rule_id
		WHERE ci.due_date < $1 AND ci.status IN ($2, $3)
		ORDER BY ci.due_date`

	items := []domain.OverdueCandidate{}
	err := r.db.SelectContext(ctx, &items, query, now, domain.CompliancePending, domain.ComplianceInProgress)
	return items, err
}

func (r *complianceItemRepository) MarkOverdue(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	query := `
		UPDATE compliance_items SET status = $1, updated_at = NOW()
		WHERE id = $2 AND due_date < $3 AND status IN ($4, $5)`

	res, err := r.db.ExecContext(ctx, query,
		domain.ComplianceOverdue, id, now, domain.CompliancePending, domain.ComplianceInProgress)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
