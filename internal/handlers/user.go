package handlers

import (
	"errors"
	"net/http"

	"todoapi/internal/config"
	"todoapi/internal/middleware"
	"todoapi/internal/service"
	"todoapi/internal/validation"

	"go.uber.org/zap"
)

// UserHandler — регистрация и вход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register создаёт пользователя. Ошибки правил — 401 со списком сообщений.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			writeMessage(w, http.StatusUnauthorized, verr.Messages)
			return
		}
		h.Logger.Errorw("Register: service error", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.Logger.Infow("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

// Login выдаёт bearer-токен и дублирует его в cookie.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.Logger.Errorw("Login: service error", "error", err)
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.SetLoginCookie(w, token.Token, h.Config.TokenTTL)
	writeJSON(w, http.StatusOK, token)
}
