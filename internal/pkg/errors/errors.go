package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда пользователь, опрос, вариант, лига или матч не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для семантических ошибок входных данных
	// (ответ не совпадает ни с одним вариантом, вариант из другого опроса и т.п.).
	ErrValidation = errors.New("invalid input")

	// ErrConflict используется для конфликтов состояния (повторный голос, повторное вступление в лигу).
	ErrConflict = errors.New("resource state conflict")

	// ErrStorage используется, когда транзакционная операция с хранилищем завершилась ошибкой.
	ErrStorage = errors.New("storage failure")

	// ErrUnauthorized используется для ошибок авторизации (нет токена, неверный токен).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда токен принадлежит другому пользователю.
	ErrForbidden = errors.New("forbidden")

	// ErrExpiredToken используется, когда срок действия токена истек.
	ErrExpiredToken = errors.New("token is expired")
)
