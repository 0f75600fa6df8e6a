package handlers

import (
	"context"

	"todoapi/internal/config"
	"todoapi/internal/middleware"
	"todoapi/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger — проверка доступности БД (*sql.DB подходит).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps — всё, что нужно роутеру.
type Deps struct {
	Users   *service.UserService
	Todos   *service.TodoService
	Files   *service.FileService
	DB      Pinger
	Tokens  middleware.TokenParser
	Metrics *middleware.Metrics // nil — без метрик
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(deps Deps, logger *zap.SugaredLogger, cfg *config.Config) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithLogging)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler)
		// promhttp сам сжимает ответ, поэтому /metrics вне WithGzip
		r.Handle("/metrics", deps.Metrics.Exporter())
	}

	healthHandler := NewHealthHandler(deps.DB, logger)
	r.Get("/healthz", healthHandler.Liveness)
	r.Get("/health", healthHandler.Readiness)

	userHandler := NewUserHandler(deps.Users, logger, cfg)
	todoHandler := NewTodoHandler(deps.Todos, logger)
	fileHandler := NewFileHandler(deps.Files, logger, cfg)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithGzip)
		r.Use(middleware.WithAuth(deps.Tokens))

		// User routes
		r.Post("/users", userHandler.Register)
		r.Post("/login", userHandler.Login)

		// Todo routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/todos", todoHandler.List)
			r.Post("/todos", todoHandler.Create)
			r.Get("/todos/{id}", todoHandler.Get)
			r.Put("/todos/{id}", todoHandler.Update)
			r.Patch("/todos/{id}", todoHandler.Update)
			r.Delete("/todos/{id}", todoHandler.Delete)
			r.Post("/todos/{id}/files", fileHandler.Upload)
		})
	})

	return &Handler{Router: r}
}
