package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"northstar-student/internal/domain"
)

type WorkLogRepository interface {
	Create(ctx context.Context, log *domain.WorkLog) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.WorkLog, error)
	// ListBetween returns the user's entries with from <= date <= to, oldest first.
	ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.WorkLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.WorkLog, int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type workLogRepository struct {
	db *sqlx.DB
}

func NewWorkLogRepository(db *sqlx.DB) WorkLogRepository {
	return &workLogRepository{db: db}
}

func (r *workLogRepository) Create(ctx context.Context, log *domain.WorkLog) error {
	query := `
		INSERT INTO work_logs (id, user_id, date, hours_worked, employer, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		log.ID, log.UserID, log.Date, log.HoursWorked, log.Employer, log.Notes,
	).Scan(&log.CreatedAt)
}

func (r *workLogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.WorkLog, error) {
	var log domain.WorkLog
	query := `SELECT * FROM work_logs WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &log, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *workLogRepository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.WorkLog, error) {
	logs := []domain.WorkLog{}
	query := `
		SELECT * FROM work_logs
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`
	err := r.db.SelectContext(ctx, &logs, query, userID, from, to)
	return logs, err
}

func (r *workLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.WorkLog, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM work_logs WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, err
	}

	logs := []domain.WorkLog{}
	query := `
		SELECT * FROM work_logs
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &logs, query, userID, params.Limit, params.Offset())
	return logs, total, err
}

func (r *workLogRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM work_logs WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}
