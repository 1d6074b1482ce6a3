package handler

import (
	"time"

	"github.com/zoobzio/clockz"

	"northstar-student/internal/jobs"
	"northstar-student/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Compliance   *ComplianceHandler
	WorkLog      *WorkLogHandler
	Permit       *PermitHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services, sweep *jobs.DeadlineSweep, clock clockz.Clock, loc *time.Location) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Compliance:   NewComplianceHandler(services.Compliance),
		WorkLog:      NewWorkLogHandler(services.WorkLog, loc),
		Permit:       NewPermitHandler(services.Permit),
		Document:     NewDocumentHandler(services.Document),
		Notification: NewNotificationHandler(services.Notification),
		Admin:        NewAdminHandler(sweep, services.Catalog, clock),
	}
}
