package storage

import (
	"fmt"

	"todoapi/internal/config"
)

const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

// Open выбирает реализацию по cfg.StorageDriver.
func Open(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "", DriverLocal:
		return NewLocal(cfg.UploadDir)
	case DriverMinIO:
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
