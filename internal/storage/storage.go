// Package storage хранит содержимое вложений: на локальном диске или в S3-совместимом хранилище.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrInvalidKey — ключ пуст или выходит за пределы хранилища.
var ErrInvalidKey = errors.New("invalid storage key")

// PutObjectOptions параметры записи. Size = -1, если размер неизвестен.
type PutObjectOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo — что получилось после записи.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage — хранилище объектов по ключу. Реализации безопасны для конкурентного использования.
type Storage interface {
	// Put записывает объект целиком; частично записанный объект не становится видимым.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete удаляет объект. Отсутствующий объект — не ошибка.
	Delete(ctx context.Context, key string) error
}
