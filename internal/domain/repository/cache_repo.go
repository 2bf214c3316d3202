package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Отсутствие ключа возвращается как apperrors.ErrNotFound.
type CacheRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
