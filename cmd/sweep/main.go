package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/config"
	"northstar-student/internal/jobs"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/email"
	"northstar-student/internal/service/notification"
)

// sweep runs the deadline sweep once and exits, for platforms that schedule
// jobs outside the API process.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zlog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	clock := clockz.RealClock
	loc := cfg.Location()
	repos := repository.NewRepositories(db)

	sweep := jobs.NewDeadlineSweep(
		repos.Permit,
		repos.ComplianceItem,
		notification.NewService(repos.Notification, clock, loc),
		email.NewService(cfg, zlog),
		loc,
		zlog.Named("sweep"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	report := sweep.Run(ctx, clock.Now())
	if report.Failures > 0 {
		zlog.Warn("deadline sweep completed with failures", zap.Int("failures", report.Failures))
	}
}
