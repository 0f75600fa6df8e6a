package repo

import (
	"context"

	"todoapi/internal/model"

	"gorm.io/gorm"
)

// FileRepository — доступ к вложениям задач.
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
}

type fileRepo struct {
	db *gorm.DB
}

// NewFileRepository создаёт реализацию репозитория вложений.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}
