package model

import "time"

// Todo — задача пользователя.
type Todo struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"` // ссылка на users.id

	// Связи
	User  *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Files []File `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`

	// Заполняется только запросом списка (подзапрос COUNT по files)
	TotalFiles *int64 `gorm:"->;-:migration" json:"total_files,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
