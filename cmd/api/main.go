package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/zoobzio/clockz"
	"go.uber.org/zap"

	"northstar-student/internal/config"
	"northstar-student/internal/domain"
	"northstar-student/internal/handler"
	"northstar-student/internal/jobs"
	"northstar-student/internal/middleware"
	"northstar-student/internal/repository"
	"northstar-student/internal/service"
	"northstar-student/internal/service/auth"
)

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

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redis != nil {
		defer redis.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to object storage", zap.Error(err))
	}

	clock := clockz.RealClock
	loc := cfg.Location()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, cfg, clock, zlog)
	sweep := jobs.NewDeadlineSweep(repos.Permit, repos.ComplianceItem, services.Notification, services.Email, loc, zlog.Named("sweep"))
	handlers := handler.NewHandlers(services, sweep, clock, loc)

	if cfg.SweepEnabled {
		scheduler := jobs.NewScheduler(sweep, redis, clock, loc, cfg.SweepAt, cfg.SweepLockTTL, zlog.Named("scheduler"))
		if err := scheduler.Start(); err != nil {
			zlog.Fatal("failed to schedule deadline sweep", zap.Error(err))
		}
		defer scheduler.Stop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zlog),
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use("/api", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(c *fiber.Ctx) error {
			return middleware.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later.")
		},
	}))

	setupRoutes(app, handlers, services.Auth, clock)

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("timezone", loc.String()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service, clock clockz.Clock) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "NorthStar Student API",
			"timestamp": clock.Now().UTC().Format(time.RFC3339),
		})
	})

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Get("/me", middleware.AuthRequired(authService), h.Auth.Me)

	protected := api.Group("", middleware.AuthRequired(authService))

	compliance := protected.Group("/compliance")
	compliance.Get("/checklist", h.Compliance.GetChecklist)
	compliance.Patch("/checklist/:itemId", h.Compliance.UpdateItem)
	compliance.Post("/initialize", h.Compliance.Initialize)
	compliance.Get("/rules", h.Compliance.ListRules)

	workLogs := protected.Group("/work-logs")
	workLogs.Post("/", h.WorkLog.Create)
	workLogs.Get("/week/:date", h.WorkLog.Week)
	workLogs.Get("/history", h.WorkLog.History)
	workLogs.Get("/dashboard", h.WorkLog.Dashboard)
	workLogs.Delete("/:id", h.WorkLog.Delete)

	permits := protected.Group("/permits")
	permits.Post("/", h.Permit.Upsert)
	permits.Get("/", h.Permit.Get)

	documents := protected.Group("/documents")
	documents.Post("/upload-url", h.Document.RequestUpload)
	documents.Get("/", h.Document.List)
	documents.Get("/:id/download", h.Document.Download)
	documents.Delete("/:id", h.Document.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/read-all", h.Notification.MarkAllAsRead)

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Post("/sweep", h.Admin.RunSweep)
	admin.Post("/catalog/invalidate", h.Admin.InvalidateCatalog)
}
