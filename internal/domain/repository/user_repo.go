package repository

import (
	"github.com/yourusername/pruve-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create возвращает apperrors.ErrConflict, если email уже занят
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// List возвращает всех пользователей в порядке возрастания ID
	List() ([]entity.User, error)
	// CountByIDs возвращает количество существующих пользователей из списка
	CountByIDs(ids []uint) (int64, error)
}
