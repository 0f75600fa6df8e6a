package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"todoapi/internal/config"
	"todoapi/internal/middleware"
	"todoapi/internal/service"

	"go.uber.org/zap"
)

const (
	// maxMultipartMemory — сколько multipart-данных держать в памяти, остальное во временных файлах.
	maxMultipartMemory = 32 << 20
	// maxUploadFiles — сколько файлов предельного размера помещается в одно тело запроса.
	maxUploadFiles = 10
	// multipartOverhead — запас на заголовки частей и границы.
	multipartOverhead = 1 << 20
)

// FileHandler — загрузка вложений.
type FileHandler struct {
	FileService *service.FileService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewFileHandler(fileService *service.FileService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{FileService: fileService, Logger: logger, Config: cfg}
}

// maxBody — лимит всего тела запроса на загрузку.
func (h *FileHandler) maxBody() int64 {
	perFile := int64(config.DefaultUploadMaxSizeMB) << 20
	if h.Config != nil && h.Config.UploadMaxBytes() > 0 {
		perFile = h.Config.UploadMaxBytes()
	}
	return perFile*maxUploadFiles + multipartOverhead
}

// Upload принимает multipart-поле file (можно несколько раз).
// Пофайловые ошибки — 400 со списком, любая другая ошибка — 404 "Upload fail: ...".
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Upload fail: "+service.ErrNotFound.Error())
		return
	}

	// Лимит общего тела запроса
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody())

	var headers []*multipart.FileHeader
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Logger.Warnw("Upload: body too large", "user_id", userID, "todo_id", id, "limit", tooLarge.Limit)
			writeMessage(w, http.StatusRequestEntityTooLarge, "Upload fail: request body too large")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			writeMessage(w, http.StatusNotFound, "Upload fail: "+err.Error())
			return
		}
	} else {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		headers = r.MultipartForm.File["file"]
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		uploads = append(uploads, service.Upload{
			ClientName:  fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	err := h.FileService.Attach(r.Context(), userID, id, uploads)
	if err != nil {
		var uerrs service.UploadErrors
		if errors.As(err, &uerrs) {
			writeJSON(w, http.StatusBadRequest, uerrs)
			return
		}
		if !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrNoFiles) {
			h.Logger.Errorw("Upload: service error", "user_id", userID, "todo_id", id, "error", err)
		}
		writeMessage(w, http.StatusNotFound, "Upload fail: "+err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "Success")
}
