package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DefaultAuthSecret      = "dev-secret-key"
	DefaultBaseURL         = "localhost:8081"
	DefaultTokenTTL        = 24 * time.Hour
	DefaultUploadMaxSizeMB = 2
	DefaultUploadDir       = "tmp/uploads"
	DefaultStorageDriver   = "local"
)

// MinIOConfig — параметры S3-совместимого хранилища вложений.
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

type Config struct {
	// Server-side settings
	DatabaseDSN     string        `env:"DATABASE_URI"`
	AuthSecret      string        `env:"AUTH_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL"`
	UploadMaxSizeMB int           `env:"UPLOAD_MAX_MB"`
	StorageDriver   string        `env:"STORAGE_DRIVER"`
	UploadDir       string        `env:"UPLOAD_DIR"`
	MinIO           MinIOConfig   `envPrefix:"MINIO_"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // только флаг
}

// UploadMaxBytes — лимит размера одного вложения в байтах.
func (c *Config) UploadMaxBytes() int64 {
	return int64(c.UploadMaxSizeMB) << 20
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни токена")
	flag.IntVar(&cfg.UploadMaxSizeMB, "upload-max-mb", cfg.UploadMaxSizeMB, "максимальный размер вложения, МБ")
	flag.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "хранилище вложений: local или minio")
	flag.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "каталог для вложений (storage=local)")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера в виде host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "использовать https для ServerURL")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "файл с токеном (клиент)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "показать версию клиента и выйти")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = DefaultAuthSecret
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = DefaultUploadMaxSizeMB
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = DefaultStorageDriver
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	// BaseURL только host:port, без схемы и пути
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".todo_token")
	}

	return cfg
}
