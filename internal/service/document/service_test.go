package document_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/config"
	"northstar-student/internal/domain"
	"northstar-student/internal/mocks"
	"northstar-student/internal/pkg/validation"
	"northstar-student/internal/service/document"
)

type fakeStore struct {
	removed []string
	fail    error
}

func (f *fakeStore) PresignedPutObject(_ context.Context, bucket, key string, _ time.Duration) (*url.URL, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	return url.Parse("https://storage.test/" + bucket + "/" + key + "?X-Amz-Signature=put")
}

func (f *fakeStore) PresignedGetObject(_ context.Context, bucket, key string, _ time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse("https://storage.test/" + bucket + "/" + key + "?X-Amz-Signature=get")
}

func (f *fakeStore) RemoveObject(_ context.Context, _ string, key string, _ minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, key)
	return f.fail
}

func newService(store *fakeStore) (*mocks.DocumentRepository, document.Service) {
	repo := new(mocks.DocumentRepository)
	cfg := &config.Config{MinIOBucket: "docs", DocumentURLExpiry: time.Hour}
	return repo, document.NewService(repo, store, cfg, clockz.NewFakeClock(), zap.NewNop())
}

func TestRequestUpload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo, svc := newService(&fakeStore{})
		repo.On("Create", ctx, mock.MatchedBy(func(d *domain.Document) bool {
			return d.UserID == userID &&
				d.FileName == "permit.pdf" &&
				strings.HasPrefix(d.StorageKey, userID.String()+"/STUDY_PERMIT/")
		})).Return(nil).Once()

		ticket, err := svc.RequestUpload(ctx, userID, domain.RequestUploadInput{
			FileName: "../../permit.pdf",
			FileSize: 2048,
			MimeType: "application/pdf",
			Type:     domain.DocStudyPermit,
		})
		require.NoError(t, err)
		assert.Contains(t, ticket.UploadURL, "X-Amz-Signature=put")
		assert.Equal(t, domain.DocStudyPermit, ticket.Document.Type)
		repo.AssertExpectations(t)
	})

	t.Run("Too large", func(t *testing.T) {
		repo, svc := newService(&fakeStore{})
		_, err := svc.RequestUpload(ctx, userID, domain.RequestUploadInput{
			FileName: "big.pdf",
			FileSize: domain.MaxDocumentSize + 1,
			MimeType: "application/pdf",
			Type:     domain.DocOther,
		})
		assert.True(t, validation.IsValidationError(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, svc := newService(&fakeStore{})
		_, err := svc.RequestUpload(ctx, userID, domain.RequestUploadInput{
			FileName: "a.pdf", FileSize: 1, MimeType: "application/pdf", Type: "PASSPORT",
		})
		assert.True(t, validation.IsValidationError(err))
	})

	t.Run("Presign failure creates no record", func(t *testing.T) {
		repo, svc := newService(&fakeStore{fail: errors.New("unreachable")})
		_, err := svc.RequestUpload(ctx, userID, domain.RequestUploadInput{
			FileName: "a.pdf", FileSize: 1, MimeType: "application/pdf", Type: domain.DocOther,
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetDownloadURL(t *testing.T) {
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()

	repo, svc := newService(&fakeStore{})
	repo.On("GetByID", ctx, userID, id).Return(&domain.Document{ID: id, UserID: userID, FileName: "lease.pdf", StorageKey: "k/lease.pdf"}, nil).Once()

	ticket, err := svc.GetDownloadURL(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "lease.pdf", ticket.FileName)
	assert.Contains(t, ticket.DownloadURL, "k/lease.pdf")

	repo.On("GetByID", ctx, userID, id).Return(nil, nil).Once()
	_, err = svc.GetDownloadURL(ctx, userID, id)
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	userID, id := uuid.New(), uuid.New()

	t.Run("Removes record and object", func(t *testing.T) {
		store := &fakeStore{}
		repo, svc := newService(store)
		repo.On("GetByID", ctx, userID, id).Return(&domain.Document{ID: id, StorageKey: "k/a.pdf"}, nil).Once()
		repo.On("Delete", ctx, userID, id).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, userID, id))
		assert.Equal(t, []string{"k/a.pdf"}, store.removed)
	})

	t.Run("Object removal failure is not returned", func(t *testing.T) {
		store := &fakeStore{fail: errors.New("timeout")}
		repo, svc := newService(store)
		repo.On("GetByID", ctx, userID, id).Return(&domain.Document{ID: id, StorageKey: "k/a.pdf"}, nil).Once()
		repo.On("Delete", ctx, userID, id).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, userID, id))
	})

	t.Run("Not owned", func(t *testing.T) {
		store := &fakeStore{}
		repo, svc := newService(store)
		repo.On("GetByID", ctx, userID, id).Return(nil, nil).Once()

		assert.ErrorIs(t, svc.Delete(ctx, userID, id), document.ErrNotFound)
		assert.Empty(t, store.removed)
	})
}
