package commands

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/config"
	"todoapi/internal/handlers"
	"todoapi/internal/repo"
	"todoapi/internal/service"
	"todoapi/internal/storage"
	"todoapi/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer поднимает настоящий сервер (SQLite в памяти, файлы во временной папке)
// и конфиг клиента с токеном во временном каталоге.
func newTestServer(t *testing.T) *config.Config {
	t.Helper()
	logger := zap.NewNop().Sugar()

	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{AuthSecret: "cli-secret", TokenTTL: time.Hour, UploadMaxSizeMB: 2}
	tokens := auth.NewJWT(cfg.AuthSecret, cfg.TokenTTL)
	v := validation.New()
	todos := repo.NewTodoRepository(db)

	h := handlers.NewHandler(handlers.Deps{
		Users:  service.NewUserService(repo.NewUserRepository(db), v, tokens),
		Todos:  service.NewTodoService(todos, store, v, logger),
		Files:  service.NewFileService(todos, repo.NewFileRepository(db), store, cfg.UploadMaxBytes(), logger),
		DB:     sqlDB,
		Tokens: tokens,
	}, logger, cfg)

	ts := httptest.NewServer(h.Router)
	t.Cleanup(func() {
		ts.Close()
		_ = sqlDB.Close()
	})

	cfg.ServerURL = ts.URL
	cfg.TokenFile = filepath.Join(t.TempDir(), "token")
	return cfg
}

// captureOut перенаправляет вывод команд в буфер на время теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}
