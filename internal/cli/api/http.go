// Package api — HTTP-клиент CLI к серверу задач.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AuthCookieName — cookie, в которой сервер дублирует токен.
const AuthCookieName = "auth_token"

// Client ходит на сервер; если Token не пуст, шлёт Authorization: Bearer.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New создаёт клиента с таймаутом по умолчанию.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// DoJSON отправляет payload как JSON (nil — без тела) и возвращает ответ с прочитанным телом.
func (c *Client) DoJSON(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

// Upload отправляет файлы multipart-полем file.
func (c *Client) Upload(ctx context.Context, path string, files []string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range files {
		if err := addFile(mw, name); err != nil {
			return nil, nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func addFile(mw *multipart.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := mw.CreateFormFile("file", filepath.Base(name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// StatusError — ответ сервера с неуспешным кодом.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server status %d: %s", e.Code, e.Message)
}

// CheckStatus возвращает *StatusError, если код ответа не 200.
// Сообщение берётся из полей message/error тела, иначе тело целиком.
func CheckStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return &StatusError{Code: resp.StatusCode, Message: describe(body)}
}

func describe(body []byte) string {
	var env struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		var s string
		if json.Unmarshal(env.Message, &s) == nil && s != "" {
			return s
		}
		var list []struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(env.Message, &list) == nil && len(list) > 0 {
			msgs := make([]string, 0, len(list))
			for _, m := range list {
				msgs = append(msgs, m.Message)
			}
			return strings.Join(msgs, "; ")
		}
	}
	// пофайловые ошибки загрузки — массив верхнего уровня
	var items []struct {
		ClientName string `json:"clientName"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(body, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			msgs = append(msgs, it.ClientName+": "+it.Message)
		}
		return strings.Join(msgs, "; ")
	}
	return strings.TrimSpace(string(body))
}
