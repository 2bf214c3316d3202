package service

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

// domainErrors - ошибки, которые сервисы пропускают наружу без оборачивания в ErrStorage
var domainErrors = []error{
	apperrors.ErrNotFound,
	apperrors.ErrValidation,
	apperrors.ErrConflict,
	apperrors.ErrUnauthorized,
	apperrors.ErrForbidden,
}

// storageError оборачивает неожиданную ошибку хранилища в apperrors.ErrStorage.
// Доменные ошибки возвращаются как есть.
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStorage, err)
}

// validationError создает ошибку apperrors.ErrValidation с пояснением
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrValidation)
}

// notFoundError создает ошибку apperrors.ErrNotFound с пояснением
func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrNotFound)
}

// conflictError создает ошибку apperrors.ErrConflict с пояснением
func conflictError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrConflict)
}
