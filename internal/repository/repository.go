package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrChecklistExists is returned by CreateChecklist when the user already
// has compliance items.
var ErrChecklistExists = errors.New("checklist already exists")

// ErrEmailTaken is returned by UserRepository.Create on a duplicate email.
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type Repositories struct {
	User           UserRepository
	Rule           RuleRepository
	Permit         PermitRepository
	ComplianceItem ComplianceItemRepository
	WorkLog        WorkLogRepository
	Notification   NotificationRepository
	Document       DocumentRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		Rule:           NewRuleRepository(db),
		Permit:         NewPermitRepository(db),
		ComplianceItem: NewComplianceItemRepository(db),
		WorkLog:        NewWorkLogRepository(db),
		Notification:   NewNotificationRepository(db),
		Document:       NewDocumentRepository(db),
	}
}
