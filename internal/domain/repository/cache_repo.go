package repository

import "time"

// CacheRepository определяет методы для работы с кешем (TTL-хранилище).
// Используется дашбордом для короткоживущей информации о текущей неделе.
type CacheRepository interface {
	// SetJSON сохраняет структуру в кеше в виде JSON с указанным TTL
	SetJSON(key string, value interface{}, expiration time.Duration) error
	// GetJSON читает JSON-значение из кеша в dest; ErrNotFound при промахе
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
