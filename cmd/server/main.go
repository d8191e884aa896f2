package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	httpadapter "resume-architect/internal/adapter/http"
	"resume-architect/internal/adapter/repository"
	"resume-architect/internal/cache"
	"resume-architect/internal/config"
	"resume-architect/internal/export"
	"resume-architect/internal/logger"
	"resume-architect/internal/score"
	"resume-architect/internal/session"
	"resume-architect/pkg/ai"
	"resume-architect/pkg/infrastructure"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	log := logger.New()

	pool, err := infrastructure.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Warn("database not available, persistence disabled")
	}
	defer func() {
		if pool != nil {
			pool.Close()
		}
	}()

	var reportCache cache.Cache
	if cfg.RedisAddr != "" {
		reportCache = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	aiClient := ai.NewClient(cfg.AIServiceURL, cfg.AIServiceKey)
	repo := repository.NewReportsRepo(pool)

	sessions := session.NewRegistry(aiClient)
	exporter := export.NewExporter(infrastructure.NewChromedpEngine())
	exporter.SetScale(cfg.ExportScale)
	scores := score.NewService(aiClient, reportCache, repo, log)

	app := fiber.New(fiber.Config{BodyLimit: 16 * 1024 * 1024})
	h := httpadapter.NewHandler(sessions, exporter, scores, repo, log)
	h.Register(app)

	log.WithField("port", cfg.Port).Info("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
