package service

import (
	"context"
	"errors"
	"fmt"

	"todoapi/internal/auth"
	"todoapi/internal/model"
	"todoapi/internal/repo"
	"todoapi/internal/validation"

	"gorm.io/gorm"
)

// TokenIssuer выпускает токен доступа для пользователя.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// RegisterInput — данные регистрации.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=5"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Token — ответ на успешный вход.
type Token struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// UserService — регистрация и вход.
type UserService struct {
	repo      repo.UserRepository
	validator Validator
	tokens    TokenIssuer
}

func NewUserService(r repo.UserRepository, v Validator, tokens TokenIssuer) *UserService {
	return &UserService{repo: r, validator: v, tokens: tokens}
}

// Register проверяет поля, уникальность username/email и создаёт пользователя с bcrypt-хешем пароля.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	verr, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	// max считает руны, bcrypt режет по байтам
	if !verr.Has("password") && len(in.Password) > auth.MaxPasswordBytes {
		verr = appendMessage(verr, validation.NewMessage("password", "max"))
	}

	// unique проверяем только для полей, прошедших остальные правила
	if !verr.Has("username") {
		taken, err := s.taken(ctx, s.repo.GetUserByUsername, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			verr = appendMessage(verr, validation.NewMessage("username", "unique"))
		}
	}
	if !verr.Has("email") {
		taken, err := s.taken(ctx, s.repo.GetUserByEmail, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			verr = appendMessage(verr, validation.NewMessage("email", "unique"))
		}
	}
	if verr != nil {
		return nil, verr
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.CreateUser(ctx, &model.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login проверяет пару email/пароль и выпускает токен.
func (s *UserService) Login(ctx context.Context, email, password string) (*Token, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &Token{Type: "bearer", Token: token}, nil
}

func (s *UserService) validate(in RegisterInput) (*validation.Error, error) {
	err := s.validator.Validate(in)
	if err == nil {
		return nil, nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr, nil
	}
	return nil, fmt.Errorf("validate: %w", err)
}

func (s *UserService) taken(ctx context.Context, lookup func(context.Context, string) (*model.User, error), value string) (bool, error) {
	u, err := lookup(ctx, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check unique: %w", err)
	}
	return u != nil, nil
}

func appendMessage(verr *validation.Error, m validation.Message) *validation.Error {
	if verr == nil {
		verr = &validation.Error{}
	}
	verr.Messages = append(verr.Messages, m)
	return verr
}
