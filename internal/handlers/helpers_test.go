package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/config"
	"todoapi/internal/handlers"
	"todoapi/internal/middleware"
	"todoapi/internal/repo"
	"todoapi/internal/service"
	"todoapi/internal/storage"
	"todoapi/internal/validation"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pngBytes — минимальная сигнатура PNG.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type testEnv struct {
	t         *testing.T
	h         http.Handler
	uploadDir string
	metrics   *middleware.Metrics
	cfg       *config.Config
}

// newTestEnv собирает роутер на in-memory SQLite и локальном хранилище во временной папке.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop().Sugar()
	middleware.SetLogger(logger)

	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	cfg := &config.Config{AuthSecret: "test-secret", TokenTTL: time.Hour, UploadMaxSizeMB: 2, UploadDir: t.TempDir()}
	store, err := storage.NewLocal(cfg.UploadDir)
	require.NoError(t, err)

	metrics, err := middleware.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	tokens := auth.NewJWT(cfg.AuthSecret, cfg.TokenTTL)
	v := validation.New()
	users := repo.NewUserRepository(db)
	todos := repo.NewTodoRepository(db)
	files := repo.NewFileRepository(db)

	h := handlers.NewHandler(handlers.Deps{
		Users:   service.NewUserService(users, v, tokens),
		Todos:   service.NewTodoService(todos, store, v, logger),
		Files:   service.NewFileService(todos, files, store, cfg.UploadMaxBytes(), logger),
		DB:      sqlDB,
		Tokens:  tokens,
		Metrics: metrics,
	}, logger, cfg)

	return &testEnv{t: t, h: h.Router, uploadDir: cfg.UploadDir, metrics: metrics, cfg: cfg}
}

// do выполняет JSON-запрос; token может быть пустым.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)
	return rr
}

type part struct {
	name        string
	contentType string
	data        []byte
}

func (e *testEnv) upload(path, token string, parts ...part) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+p.name+`"`)
		hdr.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(hdr)
		require.NoError(e.t, err)
		_, _ = w.Write(p.data)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)
	return rr
}

// signup регистрирует пользователя и возвращает его токен.
func (e *testEnv) signup(username, email, password string) string {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/users", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(e.t, http.StatusOK, rr.Code, rr.Body.String())

	rr = e.do(http.MethodPost, "/login", "", map[string]string{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, rr.Code, rr.Body.String())
	var tok service.Token
	require.NoError(e.t, json.Unmarshal(rr.Body.Bytes(), &tok))
	return tok.Token
}

func (e *testEnv) createTodo(token, title, desc string) int64 {
	e.t.Helper()
	rr := e.do(http.MethodPost, "/todos", token, map[string]string{"title": title, "description": desc})
	require.Equal(e.t, http.StatusOK, rr.Code, rr.Body.String())
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(e.t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out.ID
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)
	return rr
}
