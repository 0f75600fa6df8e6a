package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

var log *zap.SugaredLogger

// SetLogger задаёт логгер для мидлварей пакета.
func SetLogger(l *zap.SugaredLogger) {
	log = l
}

// WithLogging пишет в лог метод, uri, статус, размер ответа и время обработки.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		if log == nil {
			return
		}
		log.Infow("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", statusOf(ww),
			"size", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", GetRequestID(r.Context()),
		)
	})
}

// statusOf — код ответа; 200, если хендлер ничего не записал явно.
func statusOf(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}
