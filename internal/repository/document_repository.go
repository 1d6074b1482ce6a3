package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"northstar-student/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID, docType *domain.DocumentType) ([]domain.Document, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	query := `
		INSERT INTO documents (id, user_id, type, file_name, file_size, mime_type, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING uploaded_at`

	return r.db.QueryRowxContext(ctx, query,
		doc.ID, doc.UserID, doc.Type, doc.FileName, doc.FileSize, doc.MimeType, doc.StorageKey,
	).Scan(&doc.UploadedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	query := `SELECT * FROM documents WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &doc, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByUser(ctx context.Context, userID uuid.UUID, docType *domain.DocumentType) ([]domain.Document, error) {
	docs := []domain.Document{}

	if docType != nil {
		query := `SELECT * FROM documents WHERE user_id = $1 AND type = $2 ORDER BY uploaded_at DESC`
		err := r.db.SelectContext(ctx, &docs, query, userID, *docType)
		return docs, err
	}

	query := `SELECT * FROM documents WHERE user_id = $1 ORDER BY uploaded_at DESC`
	err := r.db.SelectContext(ctx, &docs, query, userID)
	return docs, err
}

func (r *documentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, query, id, userID)
	return err
}
