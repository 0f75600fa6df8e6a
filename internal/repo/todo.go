package repo

import (
	"context"

	"todoapi/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TodoRepository — доступ к задачам. Все выборки по id ограничены владельцем.
type TodoRepository interface {
	// ListWithFileCount возвращает задачи пользователя по возрастанию id с заполненным TotalFiles.
	ListWithFileCount(ctx context.Context, userID int64) ([]model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	// GetByID ищет задачу по id+user. Чужая или отсутствующая — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, userID, id int64) (*model.Todo, error)
	// GetByIDWithFiles то же, что GetByID, но с подгруженными файлами.
	GetByIDWithFiles(ctx context.Context, userID, id int64) (*model.Todo, error)
	// Save сохраняет поля задачи без связей.
	Save(ctx context.Context, todo *model.Todo) error
	// Delete удаляет задачу; строки files уходят каскадом.
	Delete(ctx context.Context, todo *model.Todo) error
}

type todoRepo struct {
	db *gorm.DB
}

// NewTodoRepository создаёт реализацию репозитория задач.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepo{db: db}
}

func (r *todoRepo) ListWithFileCount(ctx context.Context, userID int64) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Todo{}).
		Select("todos.*, (SELECT COUNT(*) FROM files WHERE files.todo_id = todos.id) AS total_files").
		Where("todos.user_id = ?", userID).
		Order("todos.id").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepo) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(todo).Error
}

func (r *todoRepo) GetByID(ctx context.Context, userID, id int64) (*model.Todo, error) {
	var t model.Todo
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todoRepo) GetByIDWithFiles(ctx context.Context, userID, id int64) (*model.Todo, error) {
	var t model.Todo
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("files.id") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todoRepo) Save(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(todo).Error
}

func (r *todoRepo) Delete(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", todo.UserID).
		Delete(&model.Todo{}, todo.ID).Error
}
