// Package validation проверяет входные структуры по тегам `validate` и
// отдаёт ошибки списком сообщений по полям.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message — одна ошибка поля в виде, который уходит клиенту.
type Message struct {
	Field      string `json:"field"`
	Validation string `json:"validation"`
	Message    string `json:"message"`
}

// NewMessage собирает сообщение в формате "<rule> validation failed on <field>".
func NewMessage(field, rule string) Message {
	return Message{
		Field:      field,
		Validation: rule,
		Message:    fmt.Sprintf("%s validation failed on %s", rule, field),
	}
}

// Error — проваленная проверка. Messages не пуст.
type Error struct {
	Messages []Message
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		parts = append(parts, m.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has сообщает, есть ли уже ошибка по полю.
func (e *Error) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, m := range e.Messages {
		if m.Field == field {
			return true
		}
	}
	return false
}

// Validator — обёртка над go-playground/validator, поля называются по json-тегу.
type Validator struct {
	v *validator.Validate
}

// New создаёт валидатор.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate проверяет структуру. Возвращает *Error при нарушении правил,
// nil при успехе, или ошибку самого валидатора (например, передан не struct).
func (vl *Validator) Validate(s any) error {
	err := vl.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Messages: make([]Message, 0, len(verrs))}
	for _, fe := range verrs {
		out.Messages = append(out.Messages, NewMessage(fe.Field(), fe.Tag()))
	}
	return out
}
