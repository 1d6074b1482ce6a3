package document

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/config"
	"northstar-student/internal/domain"
	"northstar-student/internal/pkg/validation"
	"northstar-student/internal/repository"
)

var ErrNotFound = errors.New("document not found")

// ObjectStore is the subset of *minio.Client used for documents.
type ObjectStore interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	RequestUpload(ctx context.Context, userID uuid.UUID, input domain.RequestUploadInput) (*domain.UploadTicket, error)
	List(ctx context.Context, userID uuid.UUID, docType *domain.DocumentType) ([]domain.Document, error)
	GetDownloadURL(ctx context.Context, userID, id uuid.UUID) (*domain.DownloadTicket, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	docRepo repository.DocumentRepository
	store   ObjectStore
	cfg     *config.Config
	clock   clockz.Clock
	log     *zap.Logger
}

func NewService(docRepo repository.DocumentRepository, store ObjectStore, cfg *config.Config, clock clockz.Clock, log *zap.Logger) Service {
	return &service{
		docRepo: docRepo,
		store:   store,
		cfg:     cfg,
		clock:   clock,
		log:     log,
	}
}

func (s *service) RequestUpload(ctx context.Context, userID uuid.UUID, input domain.RequestUploadInput) (*domain.UploadTicket, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.FileSize > domain.MaxDocumentSize {
		return nil, validation.New("file_size", "File size must be under 10MB")
	}

	fileName := path.Base(input.FileName)
	key := fmt.Sprintf("%s/%s/%d-%s", userID, input.Type, s.clock.Now().UnixMilli(), fileName)

	uploadURL, err := s.store.PresignedPutObject(ctx, s.cfg.MinIOBucket, key, s.cfg.DocumentURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	doc := &domain.Document{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       input.Type,
		FileName:   fileName,
		FileSize:   input.FileSize,
		MimeType:   input.MimeType,
		StorageKey: key,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	return &domain.UploadTicket{
		UploadURL: uploadURL.String(),
		Document:  doc,
	}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, docType *domain.DocumentType) ([]domain.Document, error) {
	if docType != nil && !docType.IsValid() {
		return nil, validation.New("type", "type is invalid")
	}
	return s.docRepo.ListByUser(ctx, userID, docType)
}

func (s *service) GetDownloadURL(ctx context.Context, userID, id uuid.UUID) (*domain.DownloadTicket, error) {
	doc, err := s.docRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}

	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))

	downloadURL, err := s.store.PresignedGetObject(ctx, s.cfg.MinIOBucket, doc.StorageKey, s.cfg.DocumentURLExpiry, params)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}

	return &domain.DownloadTicket{
		DownloadURL: downloadURL.String(),
		FileName:    doc.FileName,
	}, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}

	if err := s.docRepo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if err := s.store.RemoveObject(ctx, s.cfg.MinIOBucket, doc.StorageKey, minio.RemoveObjectOptions{}); err != nil {
		s.log.Warn("failed to remove document object",
			zap.String("document_id", id.String()), zap.String("key", doc.StorageKey), zap.Error(err))
	}
	return nil
}
