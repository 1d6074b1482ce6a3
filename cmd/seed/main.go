package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"northstar-student/internal/config"
	"northstar-student/internal/repository"
	"northstar-student/internal/service/catalog"
)

// seed upserts the embedded rule catalog and clears the cached copy.
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
		zlog.Warn("redis unavailable, cache will not be cleared", zap.Error(err))
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	rules, err := catalog.Load()
	if err != nil {
		zlog.Fatal("invalid rule catalog", zap.Error(err))
	}

	ctx := context.Background()
	repos := repository.NewRepositories(db)

	n, err := catalog.Seed(ctx, repos.Rule, rules)
	if err != nil {
		zlog.Fatal("failed to seed rules", zap.Error(err))
	}

	if err := catalog.NewService(repos.Rule, redis, zlog).Invalidate(ctx); err != nil {
		zlog.Warn("failed to clear rule cache", zap.Error(err))
	}

	zlog.Info("rule catalog seeded", zap.Int("rules", n))
}
