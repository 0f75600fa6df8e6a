package config

import (
	"flag"
	"os"
	"strings"
	"testing"
	"time"
)

// resetFlagSet создаёт новый FlagSet перед каждым вызовом NewConfig,
// чтобы избежать повторной регистрации одних и тех же флагов между тестами.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URI", "AUTH_SECRET", "TOKEN_TTL", "BASE_URL", "ENABLE_HTTPS",
		"UPLOAD_MAX_MB", "STORAGE_DRIVER", "UPLOAD_DIR", "TOKEN_FILE",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
	} {
		t.Setenv(k, "")
	}
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	clearEnv(t)

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.AuthSecret != "dev-secret-key" {
		t.Fatalf("AuthSecret default expected 'dev-secret-key', got %q", cfg.AuthSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL default expected 24h, got %s", cfg.TokenTTL)
	}
	if cfg.UploadMaxSizeMB != 2 {
		t.Fatalf("UploadMaxSizeMB default expected 2, got %d", cfg.UploadMaxSizeMB)
	}
	if cfg.UploadMaxBytes() != 2*1024*1024 {
		t.Fatalf("UploadMaxBytes expected 2 MiB, got %d", cfg.UploadMaxBytes())
	}
	if cfg.StorageDriver != "local" || cfg.UploadDir != "tmp/uploads" {
		t.Fatalf("storage defaults: driver=%q dir=%q", cfg.StorageDriver, cfg.UploadDir)
	}
	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("BaseURL default expected 'localhost:8081', got %q", cfg.BaseURL)
	}
	if cfg.ServerURL != "http://localhost:8081" {
		t.Fatalf("ServerURL default expected 'http://localhost:8081', got %q", cfg.ServerURL)
	}
	if cfg.TokenFile == "" {
		t.Fatalf("TokenFile default must be non-empty")
	}
}

func TestNewConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BASE_URL", "example.com:443")
	t.Setenv("ENABLE_HTTPS", "true")
	t.Setenv("AUTH_SECRET", "top")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("UPLOAD_MAX_MB", "10")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_BUCKET", "attachments")
	t.Setenv("MINIO_USE_SSL", "true")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.ServerURL != "https://example.com:443" {
		t.Fatalf("ServerURL expected 'https://example.com:443', got %q", cfg.ServerURL)
	}
	if cfg.AuthSecret != "top" {
		t.Fatalf("AuthSecret expected from env 'top', got %q", cfg.AuthSecret)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Fatalf("TokenTTL expected 90m, got %s", cfg.TokenTTL)
	}
	if cfg.UploadMaxSizeMB != 10 {
		t.Fatalf("UploadMaxSizeMB expected 10, got %d", cfg.UploadMaxSizeMB)
	}
	if cfg.StorageDriver != "minio" {
		t.Fatalf("StorageDriver expected minio, got %q", cfg.StorageDriver)
	}
	if cfg.MinIO.Endpoint != "minio:9000" || cfg.MinIO.Bucket != "attachments" || !cfg.MinIO.UseSSL {
		t.Fatalf("MinIO config not read from env: %+v", cfg.MinIO)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	clearEnv(t)
	// Невалидный BASE_URL (со схемой) должен откатиться на localhost:8081
	t.Setenv("BASE_URL", "http://bad:8080")
	t.Setenv("ENABLE_HTTPS", "false")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8081" {
		t.Fatalf("invalid BASE_URL must fallback to 'localhost:8081', got %q", cfg.BaseURL)
	}
	if !strings.HasPrefix(cfg.ServerURL, "http://localhost:8081") {
		t.Fatalf("ServerURL must reflect fallback base, got %q", cfg.ServerURL)
	}
}
