package service

import "errors"

// Закрытый набор ошибок финализации. Обработчики ветвятся по виду ошибки
// через errors.Is, а не по тексту сообщения.
var (
	// ErrFinalizeMalformedPayload — тело запроса не разобрано (games не список и т.п.)
	ErrFinalizeMalformedPayload = errors.New("finalize payload is malformed")

	// ErrFinalizeWeekNotFound — указанная неделя не существует
	ErrFinalizeWeekNotFound = errors.New("week not found")

	// ErrFinalizeGameNotFound — игра из батча не существует
	ErrFinalizeGameNotFound = errors.New("game not found")

	// ErrFinalizeInvalidScore — счет отсутствует или отрицательный
	ErrFinalizeInvalidScore = errors.New("invalid game score")

	// ErrFinalizePersistence — низкоуровневая ошибка хранилища внутри транзакции
	ErrFinalizePersistence = errors.New("finalize persistence failure")
)
