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

type PermitRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.StudyPermit, error)
	Upsert(ctx context.Context, permit *domain.StudyPermit) error

	// ListDueForReminder returns non-expired permits expiring within [from, to]
	// whose flag for cp is still false.
	ListDueForReminder(ctx context.Context, cp domain.ReminderCheckpoint, from, to time.Time) ([]domain.PermitReminder, error)
	// MarkReminderSent flips the flag for cp from false to true. It reports
	// false when the flag was already set, so only one caller ever wins.
	MarkReminderSent(ctx context.Context, permitID uuid.UUID, cp domain.ReminderCheckpoint) (bool, error)
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	MarkExpiringSoon(ctx context.Context, now, horizon time.Time) (int64, error)
}

type permitRepository struct {
	db *sqlx.DB
}

func NewPermitRepository(db *sqlx.DB) PermitRepository {
	return &permitRepository{db: db}
}

func reminderColumn(cp domain.ReminderCheckpoint) (string, error) {
	switch cp {
	case domain.Checkpoint90:
		return "reminder_sent_90", nil
	case domain.Checkpoint60:
		return "reminder_sent_60", nil
	case domain.Checkpoint30:
		return "reminder_sent_30", nil
	default:
		return "", fmt.Errorf("unknown reminder checkpoint %d", cp)
	}
}

func (r *permitRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.StudyPermit, error) {
	var permit domain.StudyPermit
	query := `SELECT * FROM study_permits WHERE user_id = $1`

	err := r.db.GetContext(ctx, &permit, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &permit, nil
}

// Upsert keeps the reminder flags of an existing permit untouched.
func (r *permitRepository) Upsert(ctx context.Context, permit *domain.StudyPermit) error {
	query := `
		INSERT INTO study_permits (id, user_id, permit_number, issue_date, expiry_date, status, conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			permit_number = EXCLUDED.permit_number,
			issue_date = COALESCE(EXCLUDED.issue_date, study_permits.issue_date),
			expiry_date = EXCLUDED.expiry_date,
			status = EXCLUDED.status,
			conditions = EXCLUDED.conditions,
			updated_at = NOW()
		RETURNING *`

	return r.db.QueryRowxContext(ctx, query,
		permit.ID, permit.UserID, permit.PermitNumber, permit.IssueDate,
		permit.ExpiryDate, permit.Status, permit.Conditions,
	).StructScan(permit)
}

func (r *permitRepository) ListDueForReminder(ctx context.Context, cp domain.ReminderCheckpoint, from, to time.Time) ([]domain.PermitReminder, error) {
	column, err := reminderColumn(cp)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT p.*, u.email, u.first_name
		FROM study_permits p
		JOIN users u ON u.id = p.user_id
		WHERE p.expiry_date >= $1 AND p.expiry_date <= $2
			AND p.status <> $3
			AND p.%s = false
		ORDER BY p.expiry_date`, column)

	permits := []domain.PermitReminder{}
	err = r.db.SelectContext(ctx, &permits, query, from, to, domain.PermitExpired)
	return permits, err
}

func (r *permitRepository) MarkReminderSent(ctx context.Context, permitID uuid.UUID, cp domain.ReminderCheckpoint) (bool, error) {
	column, err := reminderColumn(cp)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`UPDATE study_permits SET %[1]s = true, updated_at = NOW() WHERE id = $1 AND %[1]s = false`, column)
	res, err := r.db.ExecContext(ctx, query, permitID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *permitRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE study_permits SET status = $1, updated_at = NOW() WHERE expiry_date < $2 AND status <> $1`
	res, err := r.db.ExecContext(ctx, query, domain.PermitExpired, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *permitRepository) MarkExpiringSoon(ctx context.Context, now, horizon time.Time) (int64, error) {
	query := `
		UPDATE study_permits SET status = $1, updated_at = NOW()
		WHERE status = $2 AND expiry_date >= $3 AND expiry_date <= $4`
	res, err := r.db.ExecContext(ctx, query, domain.PermitExpiringSoon, domain.PermitActive, now, horizon)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
