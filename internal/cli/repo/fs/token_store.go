package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken — токен ещё не сохранён (нужен login).
var ErrNoToken = errors.New("not logged in")

// TokenFileStore — файловое хранилище токена CLI.
type TokenFileStore struct {
	Path string
}

// Save сохраняет токен, создавая каталог при необходимости.
func (s TokenFileStore) Save(token string) error {
	if s.Path == "" {
		return errors.New("token file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

// Load читает токен; отсутствующий или пустой файл — ErrNoToken.
func (s TokenFileStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimRight(string(b), " \t\r\n")
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Delete удаляет файл токена. Отсутствующий файл — не ошибка.
func (s TokenFileStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
