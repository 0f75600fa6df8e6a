package handlers

import (
	"errors"
	"net/http"

	"todoapi/internal/middleware"
	"todoapi/internal/model"
	"todoapi/internal/service"
	"todoapi/internal/validation"

	"go.uber.org/zap"
)

// TodoHandler — CRUD задач текущего пользователя.
type TodoHandler struct {
	TodoService *service.TodoService
	Logger      *zap.SugaredLogger
}

func NewTodoHandler(todoService *service.TodoService, logger *zap.SugaredLogger) *TodoHandler {
	return &TodoHandler{TodoService: todoService, Logger: logger}
}

// todoDetail — задача вместе с вложениями.
type todoDetail struct {
	*model.Todo
	Files []model.File `json:"files"`
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	todos, err := h.TodoService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var in service.TodoInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.TodoService.Create(r.Context(), userID, in)
	if err != nil {
		h.fail(w, "Create", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	todo, err := h.TodoService.Get(r.Context(), userID, id)
	if err != nil {
		h.fail(w, "Get", userID, err)
		return
	}
	files := todo.Files
	if files == nil {
		files = []model.File{}
	}
	writeJSON(w, http.StatusOK, todoDetail{Todo: todo, Files: files})
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	var in service.TodoInput
	if err := decodeJSON(r, &in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.TodoService.Update(r.Context(), userID, id, in)
	if err != nil {
		h.fail(w, "Update", userID, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.TodoService.Delete(r.Context(), userID, id); err != nil {
		h.fail(w, "Delete", userID, err)
		return
	}
	writeMessage(w, http.StatusOK, "Deleted")
}

// fail переводит ошибку сервиса в ответ: правила — 401, нет задачи — 404, прочее — 500.
func (h *TodoHandler) fail(w http.ResponseWriter, op string, userID int64, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusUnauthorized, verr.Messages)
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	default:
		h.Logger.Errorw(op+": service error", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}
