package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"todoapi/internal/model"
	"todoapi/internal/repo"
	"todoapi/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Типы ошибок загрузки.
const (
	UploadErrorType  = "type"
	UploadErrorSize  = "size"
	UploadErrorFatal = "fatal"
)

const uploadFieldName = "file"

// Upload — один файл из запроса. Open может вызываться несколько раз.
type Upload struct {
	ClientName  string
	ContentType string // из заголовка клиента
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadError — ошибка по одному файлу.
type UploadError struct {
	FieldName  string `json:"fieldName"`
	ClientName string `json:"clientName"`
	Message    string `json:"message"`
	Type       string `json:"type"`
}

// UploadErrors — пофайловые ошибки пакета загрузки. Файлы из пакета не сохранены.
type UploadErrors []UploadError

func (e UploadErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, u := range e {
		msgs = append(msgs, u.ClientName+": "+u.Message)
	}
	return "upload failed: " + strings.Join(msgs, "; ")
}

// FileService прикрепляет изображения к задачам.
type FileService struct {
	todos   repo.TodoRepository
	files   repo.FileRepository
	store   storage.Storage
	maxSize int64
	logger  *zap.SugaredLogger
}

// NewFileService создаёт сервис; maxSize — лимит одного файла в байтах.
func NewFileService(todos repo.TodoRepository, files repo.FileRepository, store storage.Storage, maxSize int64, logger *zap.SugaredLogger) *FileService {
	return &FileService{todos: todos, files: files, store: store, maxSize: maxSize, logger: logger}
}

type checkedUpload struct {
	Upload
	contentType string
	ext         string
}

// Attach проверяет все файлы, сохраняет их в хранилище и создаёт строки files.
// Если хоть один файл не прошёл проверку, ничего не сохраняется.
func (s *FileService) Attach(ctx context.Context, userID, todoID int64, uploads []Upload) error {
	todo, err := s.todos.GetByID(ctx, userID, todoID)
	if err != nil {
		return notFound(err, "get todo")
	}
	if len(uploads) == 0 {
		return ErrNoFiles
	}

	checked := make([]checkedUpload, 0, len(uploads))
	var errs UploadErrors
	for _, u := range uploads {
		cu, uerr, err := s.check(u)
		if err != nil {
			return err
		}
		if uerr != nil {
			errs = append(errs, *uerr)
			continue
		}
		checked = append(checked, cu)
	}
	if len(errs) > 0 {
		return errs
	}

	keys, err := s.storeAll(ctx, todo.ID, checked)
	if err != nil {
		return err
	}

	inserted := make([]bool, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := s.files.Create(gctx, &model.File{TodoID: todo.ID, Path: key}); err != nil {
				return err
			}
			inserted[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// объекты без строки в files никому не видны
		orphans := make([]string, 0, len(keys))
		for i, key := range keys {
			if !inserted[i] {
				orphans = append(orphans, key)
			}
		}
		s.remove(ctx, orphans)
		return fmt.Errorf("create file rows: %w", err)
	}

	s.logger.Infow("files attached", "todo_id", todo.ID, "count", len(keys))
	return nil
}

// check определяет тип по содержимому и сверяет размер.
func (s *FileService) check(u Upload) (checkedUpload, *UploadError, error) {
	rc, err := u.Open()
	if err != nil {
		return checkedUpload{}, nil, fmt.Errorf("open %s: %w", u.ClientName, err)
	}
	mt, err := mimetype.DetectReader(rc)
	_ = rc.Close()
	if err != nil {
		return checkedUpload{}, nil, fmt.Errorf("detect type of %s: %w", u.ClientName, err)
	}

	contentType := mt.String()
	if mt.Is("application/octet-stream") && u.ContentType != "" {
		contentType = u.ContentType
	}
	mainType, subType, _ := strings.Cut(contentType, "/")
	if mainType != "image" {
		return checkedUpload{}, &UploadError{
			FieldName:  uploadFieldName,
			ClientName: u.ClientName,
			Message:    fmt.Sprintf("Invalid file type %s or %s. Only image is allowed", strings.SplitN(subType, ";", 2)[0], mainType),
			Type:       UploadErrorType,
		}, nil
	}
	if u.Size > s.maxSize {
		return checkedUpload{}, &UploadError{
			FieldName:  uploadFieldName,
			ClientName: u.ClientName,
			Message:    fmt.Sprintf("File size should be less than %s", humanSize(s.maxSize)),
			Type:       UploadErrorSize,
		}, nil
	}

	ext := strings.ToLower(filepath.Ext(u.ClientName))
	if ext == "" {
		ext = mt.Extension()
	}
	return checkedUpload{Upload: u, contentType: contentType, ext: ext}, nil, nil
}

// storeAll пишет файлы параллельно и дожидается всех. При любой ошибке
// уже записанные объекты удаляются, а ошибки возвращаются как UploadErrors.
func (s *FileService) storeAll(ctx context.Context, todoID int64, items []checkedUpload) ([]string, error) {
	keys := make([]string, len(items))
	failures := make([]error, len(items))

	var g errgroup.Group
	for i, it := range items {
		i, it := i, it
		g.Go(func() error {
			key := fmt.Sprintf("todos/%d/%s%s", todoID, uuid.NewString(), it.ext)
			if err := s.put(ctx, key, it); err != nil {
				failures[i] = err
				return nil
			}
			keys[i] = key
			return nil
		})
	}
	_ = g.Wait()

	var errs UploadErrors
	for i, err := range failures {
		if err != nil {
			errs = append(errs, UploadError{
				FieldName:  uploadFieldName,
				ClientName: items[i].ClientName,
				Message:    err.Error(),
				Type:       UploadErrorFatal,
			})
		}
	}
	if len(errs) == 0 {
		return keys, nil
	}

	s.remove(ctx, keys)
	return nil, errs
}

// remove удаляет уже записанные объекты, ошибки только логируются.
func (s *FileService) remove(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warnw("failed to remove partial upload", "path", key, "err", err)
		}
	}
}

func (s *FileService) put(ctx context.Context, key string, it checkedUpload) error {
	rc, err := it.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	_, err = s.store.Put(ctx, key, rc, storage.PutObjectOptions{Size: it.Size, ContentType: it.contentType})
	return err
}

func humanSize(n int64) string {
	if n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	if n%(1<<10) == 0 {
		return fmt.Sprintf("%dKB", n>>10)
	}
	return fmt.Sprintf("%dB", n)
}
