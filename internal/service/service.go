package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/config"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/auth"
	"northstar-student/internal/service/catalog"
	"northstar-student/internal/service/compliance"
	"northstar-student/internal/service/document"
	"northstar-student/internal/service/email"
	"northstar-student/internal/service/notification"
	"northstar-student/internal/service/permit"
	"northstar-student/internal/service/worklog"
)

type Services struct {
	Auth         auth.Service
	Catalog      catalog.Service
	Compliance   compliance.Service
	Permit       permit.Service
	WorkLog      worklog.Service
	Document     document.Service
	Notification notification.Service
	Email        email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, clock clockz.Clock, log *zap.Logger) *Services {
	loc := cfg.Location()

	emailService := email.NewService(cfg, log)
	notificationService := notification.NewService(repos.Notification, clock, loc)
	catalogService := catalog.NewService(repos.Rule, redis, log)

	return &Services{
		Auth:    auth.NewService(repos.User, emailService, cfg, clock, log),
		Catalog: catalogService,
		Compliance: compliance.NewService(
			repos.ComplianceItem,
			repos.Rule,
			repos.Permit,
			repos.Document,
			catalogService,
			clock,
			loc,
			log,
		),
		Permit:       permit.NewService(repos.Permit, notificationService, clock, loc, log),
		WorkLog:      worklog.NewService(repos.WorkLog, notificationService, clock, loc, log),
		Document:     document.NewService(repos.Document, minioClient, cfg, clock, log),
		Notification: notificationService,
		Email:        emailService,
	}
}
