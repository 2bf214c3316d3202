package entity

import (
	"strings"
	"time"
)

// User представляет пользователя, вошедшего через внешнего провайдера.
// Email неизменяем и служит идентичностью при повторном входе.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"uid"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:255;not null;default:''" json:"name"`
	Picture   string    `gorm:"size:1024;not null;default:''" json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// NormalizeEmail приводит email к каноническому виду для поиска по уникальному индексу
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
