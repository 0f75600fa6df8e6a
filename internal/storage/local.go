package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// tmpDirName — промежуточная папка внутри корня; оттуда файл переносится rename'ом.
const tmpDirName = ".tmp"

type localStorage struct {
	root string
}

// NewLocal создаёт файловое хранилище в каталоге root (создаётся при необходимости).
func NewLocal(root string) (Storage, error) {
	if root == "" {
		return nil, errors.New("upload dir is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs %s: %w", root, err)
	}
	if err := os.MkdirAll(filepath.Join(abs, tmpDirName), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return &localStorage{root: abs}, nil
}

func (s *localStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == "." ||
		clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) ||
		strings.HasPrefix(clean, tmpDirName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.root, clean), nil
}

// Put пишет во временный файл и переносит его на место, так что объект появляется атомарно.
func (s *localStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	dst, err := s.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return ObjectInfo{}, fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, tmpDirName), "upload-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // после rename — no-op

	n, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("write %s: %w", key, err)
	}
	if opt.Size >= 0 && n != opt.Size {
		return ObjectInfo{}, fmt.Errorf("write %s: short write %d of %d bytes", key, n, opt.Size)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return ObjectInfo{}, fmt.Errorf("move %s: %w", key, err)
	}
	return ObjectInfo{Key: key, Size: n, ContentType: opt.ContentType}, nil
}

func (s *localStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
