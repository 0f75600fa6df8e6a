package model

import "time"

// File — вложение задачи. Содержимое лежит в storage, здесь только ключ.
type File struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TodoID int64 `gorm:"not null;index" json:"todo_id"` // ссылка на todos.id

	Path string `gorm:"not null" json:"path"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
