package domain

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocStudyPermit      DocumentType = "STUDY_PERMIT"
	DocEnrollmentLetter DocumentType = "ENROLLMENT_LETTER"
	DocWorkPermit       DocumentType = "WORK_PERMIT"
	DocCoopLetter       DocumentType = "COOOP_LETTER"
	DocLeaseAgreement   DocumentType = "LEASE_AGREEMENT"
	DocHealthInsurance  DocumentType = "HEALTH_INSURANCE"
	DocTaxReturn        DocumentType = "TAX_RETURN"
	DocOther            DocumentType = "OTHER"
)

// MaxDocumentSize is the largest upload accepted, in bytes.
const MaxDocumentSize = 10 * 1024 * 1024

type Document struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	UserID     uuid.UUID    `json:"user_id" db:"user_id"`
	Type       DocumentType `json:"type" db:"type"`
	FileName   string       `json:"file_name" db:"file_name"`
	FileSize   int64        `json:"file_size" db:"file_size"`
	MimeType   string       `json:"mime_type" db:"mime_type"`
	StorageKey string       `json:"-" db:"storage_key"`
	UploadedAt time.Time    `json:"uploaded_at" db:"uploaded_at"`
}

type RequestUploadInput struct {
	FileName string       `json:"file_name" validate:"required"`
	FileSize int64        `json:"file_size" validate:"gt=0"`
	MimeType string       `json:"mime_type" validate:"required"`
	Type     DocumentType `json:"type" validate:"required,oneof=STUDY_PERMIT ENROLLMENT_LETTER WORK_PERMIT COOOP_LETTER LEASE_AGREEMENT HEALTH_INSURANCE TAX_RETURN OTHER"`
}

type UploadTicket struct {
	UploadURL string    `json:"upload_url"`
	Document  *Document `json:"document"`
}

type DownloadTicket struct {
	DownloadURL string `json:"download_url"`
	FileName    string `json:"file_name"`
}

func (t DocumentType) IsValid() bool {
	switch t {
	case DocStudyPermit, DocEnrollmentLetter, DocWorkPermit, DocCoopLetter,
		DocLeaseAgreement, DocHealthInsurance, DocTaxReturn, DocOther:
		return true
	default:
		return false
	}
}
