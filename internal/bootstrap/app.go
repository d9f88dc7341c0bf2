package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/extract"
	"resume-screener/internal/resumes"
	"resume-screener/internal/screening"
	"resume-screener/internal/services/health"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Vocabulary     *screening.Vocabulary
	Extractor      *extract.TwoTier
	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	ResumesHandler *resumes.Handler
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	vocab, err := BuildVocabulary(cfg.VocabularyFile)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store object.ObjectStore
	if cfg.ArchiveUploads {
		store, err = buildStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:     cfg,
		DB:         sqlDB,
		Store:      store,
		Vocabulary: vocab,
		Extractor:  BuildExtractor(cfg),
	}

	if app.DB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
	} else {
		app.ResumesRepo = resumes.NewMemoryRepo()
	}

	app.ResumesService = &resumes.Service{
		Extractor:  app.Extractor,
		Vocabulary: app.Vocabulary,
		Repo:       app.ResumesRepo,
		Store:      app.Store,
	}
	app.ResumesHandler = resumes.NewHandler(app.ResumesService, cfg.MaxUploadBytes)

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		ResumeHandler: app.ResumesHandler,
		Health:        health.NewService(pinger),
	})

	return app, nil
}

// BuildVocabulary loads the vocabulary file, or the built-in list when path is empty.
func BuildVocabulary(path string) (*screening.Vocabulary, error) {
	if strings.TrimSpace(path) == "" {
		return screening.DefaultVocabulary(), nil
	}
	vocab, err := screening.LoadVocabulary(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary %s: %w", path, err)
	}
	telemetry.Info("bootstrap.vocabulary_loaded", map[string]any{
		"path":   path,
		"skills": len(vocab.Skills()),
		"roles":  len(vocab.Roles()),
	})
	return vocab, nil
}

// BuildExtractor wires the in-process extractor with an optional Tika fallback.
func BuildExtractor(cfg config.Config) *extract.TwoTier {
	var fallback extract.Extractor
	if strings.TrimSpace(cfg.TikaURL) != "" {
		fallback = extract.NewTika(cfg.TikaURL,
			extract.WithTimeout(cfg.TikaTimeout),
			extract.WithOCRStrategy(cfg.TikaOCRStrategy),
		)
	} else {
		telemetry.Info("bootstrap.no_fallback_extractor", map[string]any{"reason": "TIKA_URL empty"})
	}
	return extract.NewTwoTier(extract.Primary{}, fallback, cfg.MinTextChars)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
