package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, неверные учетные данные).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, повторное имя
	// заявки в сезоне или повторный выбор той же команды).
	ErrConflict = errors.New("resource state conflict")

	// ErrWeekLocked используется, когда lock_time недели уже прошел
	// и заявки/пики менять нельзя.
	ErrWeekLocked = errors.New("week is locked")
)
