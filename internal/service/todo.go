package service

import (
	"context"
	"errors"
	"fmt"

	"todoapi/internal/model"
	"todoapi/internal/repo"
	"todoapi/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TodoInput — поля задачи при создании и изменении.
type TodoInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// TodoService — CRUD задач в пределах одного владельца.
type TodoService struct {
	todos     repo.TodoRepository
	store     storage.Storage
	validator Validator
	logger    *zap.SugaredLogger
}

func NewTodoService(todos repo.TodoRepository, store storage.Storage, v Validator, logger *zap.SugaredLogger) *TodoService {
	return &TodoService{todos: todos, store: store, validator: v, logger: logger}
}

// List возвращает задачи пользователя с количеством вложений.
func (s *TodoService) List(ctx context.Context, userID int64) ([]model.Todo, error) {
	todos, err := s.todos.ListWithFileCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Create проверяет поля и создаёт задачу для пользователя.
func (s *TodoService) Create(ctx context.Context, userID int64, in TodoInput) (*model.Todo, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	todo := &model.Todo{UserID: userID, Title: in.Title, Description: in.Description}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// Get возвращает задачу с вложениями.
func (s *TodoService) Get(ctx context.Context, userID, todoID int64) (*model.Todo, error) {
	todo, err := s.todos.GetByIDWithFiles(ctx, userID, todoID)
	if err != nil {
		return nil, notFound(err, "get todo")
	}
	return todo, nil
}

// Update перезаписывает title и description. Проверка полей идёт до обращения к БД.
func (s *TodoService) Update(ctx context.Context, userID, todoID int64, in TodoInput) (*model.Todo, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	todo, err := s.todos.GetByID(ctx, userID, todoID)
	if err != nil {
		return nil, notFound(err, "get todo")
	}
	todo.Title = in.Title
	todo.Description = in.Description
	if err := s.todos.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("save todo: %w", err)
	}
	return todo, nil
}

// Delete удаляет задачу, затем её объекты из хранилища.
// Ошибки удаления объектов только логируются.
func (s *TodoService) Delete(ctx context.Context, userID, todoID int64) error {
	todo, err := s.todos.GetByIDWithFiles(ctx, userID, todoID)
	if err != nil {
		return notFound(err, "get todo")
	}
	if err := s.todos.Delete(ctx, todo); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	for _, f := range todo.Files {
		if err := s.store.Delete(ctx, f.Path); err != nil {
			s.logger.Warnw("failed to remove stored file",
				"todo_id", todo.ID,
				"path", f.Path,
				"err", err,
			)
		}
	}
	return nil
}

// notFound переводит отсутствие записи в ErrNotFound, остальное оборачивает.
func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
