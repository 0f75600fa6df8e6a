package model

import "time"

// User — учётная запись владельца задач.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Email    string `gorm:"uniqueIndex;not null;size:254" json:"email"`
	// bcrypt-хеш, наружу не отдаётся
	Password string `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
