package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-editor/internal/adapter/http"
	repo "resume-editor/internal/adapter/repository"
	"resume-editor/internal/cache"
	"resume-editor/internal/config"
	"resume-editor/internal/infrastructure/migration"
	"resume-editor/internal/logger"
	"resume-editor/internal/usecase"
	"resume-editor/pkg/ai"
	infra "resume-editor/pkg/infrastructure"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// storage
	var (
		drafts repo.DraftStore = repo.NewMemoryDrafts()
		jobs   usecase.JobsRepo = repo.NewMemoryJobs()
	)
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("database not available")
		}
		defer pool.Close()
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
		drafts = repo.NewDraftsRepo(pool)
		jobs = repo.NewJobsRepo(pool)
	} else {
		log.Warn("DATABASE_URL not set, drafts are kept in memory")
	}

	if cfg.RedisURL != "" {
		rdb, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis not available, running without draft cache")
		} else {
			defer rdb.Close()
			drafts = repo.NewCachedDrafts(drafts, cache.NewRedisCache(rdb), cfg.CacheTTL, log)
		}
	}

	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("ai provider not available")
	}
	defer closeGen()

	editor := usecase.NewEditor(drafts, log)
	assistant := usecase.NewAssistant(gen, editor, log)
	exporter := usecase.NewExporter(infra.NewChromedpRenderer(cfg.ChromePath), jobs, editor, cfg.ExportDir, log)

	app := httpadapter.NewApp(httpadapter.NewHandler(editor, assistant, exporter), log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{"port": cfg.Port, "ai_provider": cfg.AIProvider}).Info("server listening")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped")
	}

	exporter.Wait()
	log.Info("shutdown complete")
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, func(), error) {
	if cfg.AIProvider == "gemini" {
		c, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}
	return ai.NewClient(cfg.AIServiceURL, cfg.AITimeout), func() {}, nil
}
