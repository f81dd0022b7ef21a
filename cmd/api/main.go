package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"betterfeedback/internal/application"
	"betterfeedback/internal/application/analyzer"
	"betterfeedback/internal/config"
	domai "betterfeedback/internal/domain/ai"
	"betterfeedback/internal/domain/feedback"
	"betterfeedback/internal/infra/ai/gemini"
	aiopenai "betterfeedback/internal/infra/ai/openai"
	mysqldb "betterfeedback/internal/infra/db/mysql"
	postgresdb "betterfeedback/internal/infra/db/postgres"
	sqlitedb "betterfeedback/internal/infra/db/sqlite"
	"betterfeedback/internal/infra/httpserver"
	minioStore "betterfeedback/internal/infra/storage"
	"betterfeedback/internal/logging"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Debug)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// connect database
	db, repo, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("database connect error", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()
	logger.Info("database ready", zap.String("driver", cfg.Database.Driver))

	// init AI client (validates credentials early)
	aiClient, err := openAIClient(ctx, cfg)
	if err != nil {
		logger.Fatal("ai client init error", zap.String("provider", cfg.AI.Provider), zap.Error(err))
	}
	logger.Info("ai service ready", zap.String("provider", cfg.AI.Provider))

	// init archive store (optional)
	var archive feedback.ArchiveStore
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			logger.Fatal("archive store init error", zap.Error(err))
		}
		archive = store
		logger.Info("archive store ready", zap.String("bucket", cfg.Archive.BucketName))
	}

	// init service
	svc := &analyzer.Service{
		AI:      aiClient,
		Repo:    repo,
		Archive: archive,
		Clock:   application.SystemClock{},
		Log:     logger,
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, cfg.Server.AllowedOrigins, logger))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, feedback.Repository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlitedb.Connect(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlitedb.NewRunRepository(db), nil
	case "postgres":
		db, err := postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, postgresdb.NewRunRepository(db), nil
	case "mysql":
		db, err := mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		return db, mysqldb.NewRunRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}
}

func openAIClient(ctx context.Context, cfg *config.Config) (domai.Client, error) {
	switch cfg.AI.Provider {
	case "gemini":
		return gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
	case "openai":
		if cfg.AI.APIKey == "" {
			return nil, fmt.Errorf("openai api key is required")
		}
		return aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %q", cfg.AI.Provider)
	}
}
