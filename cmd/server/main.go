package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/config"
	"todoapi/internal/handlers"
	"todoapi/internal/middleware"
	"todoapi/internal/repo"
	"todoapi/internal/service"
	"todoapi/internal/storage"
	"todoapi/internal/validation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		sugar.Fatalw("failed to get sql.DB", "error", err)
	}
	defer sqlDB.Close()

	store, err := storage.Open(cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		sugar.Fatalw("failed to register metrics", "error", err)
	}

	tokens := auth.NewJWT(cfg.AuthSecret, cfg.TokenTTL)
	v := validation.New()

	userRepo := repo.NewUserRepository(gormDB)
	todoRepo := repo.NewTodoRepository(gormDB)
	fileRepo := repo.NewFileRepository(gormDB)

	h := handlers.NewHandler(handlers.Deps{
		Users:   service.NewUserService(userRepo, v, tokens),
		Todos:   service.NewTodoService(todoRepo, store, v, sugar),
		Files:   service.NewFileService(todoRepo, fileRepo, store, cfg.UploadMaxBytes(), sugar),
		DB:      sqlDB,
		Tokens:  tokens,
		Metrics: metrics,
	}, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"StorageDriver", cfg.StorageDriver,
		"UploadMaxSizeMB", cfg.UploadMaxSizeMB,
	)

	go func() {
		sugar.Infow("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
