package entity

import (
	"encoding/json"
	"time"
)

// Entry представляет заявку пользователя на сезон.
// Имя заявки уникально в рамках (user_id, season_year).
type Entry struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	WeekID     uint   `gorm:"not null;index" json:"week_id"`
	Name       string `gorm:"size:100;not null;index" json:"name"`
	SeasonYear int    `gorm:"not null;index" json:"season_year"`

	// Legacy-снимок пиков; не является источником истины,
	// авторитетные данные живут в таблице picks.
	Picks json.RawMessage `gorm:"serializer:json;type:jsonb;not null" json:"picks"`

	IsEliminated bool `gorm:"not null;default:false" json:"is_eliminated"`
	IsPaid       bool `gorm:"not null;default:false" json:"is_paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Entry) TableName() string {
	return "entries"
}
