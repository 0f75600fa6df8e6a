package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"todoapi/internal/cli/api"
	"todoapi/internal/cli/repo"
	fsrepo "todoapi/internal/cli/repo/fs"
	"todoapi/internal/config"
)

func tokenStore(cfg *config.Config) repo.TokenStore {
	return fsrepo.TokenFileStore{Path: cfg.TokenFile}
}

// authedClient — клиент с сохранённым токеном; без токена ошибка "not logged in".
func authedClient(cfg *config.Config) (*api.Client, error) {
	token, err := tokenStore(cfg).Load()
	if err != nil {
		return nil, err
	}
	return api.New(cfg.ServerURL, token), nil
}

// todoPath проверяет id и собирает путь /todos/{id}.
func todoPath(id string) (string, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid todo id %q", id)
	}
	return "/todos/" + strconv.FormatInt(n, 10), nil
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Ответы сервера, которые печатает CLI.
type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type fileView struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

type todoView struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TotalFiles  *int64     `json:"total_files"`
	Files       []fileView `json:"files"`
}

type tokenView struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}
