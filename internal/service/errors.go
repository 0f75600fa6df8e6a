package service

import "errors"

var (
	// ErrNotFound — задачи нет или она принадлежит другому пользователю.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoFiles — в запросе на загрузку нет ни одного файла.
	ErrNoFiles = errors.New("no files to upload")
)

// Validator проверяет входную структуру; при нарушении правил возвращает *validation.Error.
type Validator interface {
	Validate(s any) error
}
