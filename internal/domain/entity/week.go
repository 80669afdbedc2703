package entity

import (
	"time"
)

// Week представляет игровую неделю сезона
type Week struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SeasonYear int        `gorm:"not null;index" json:"season_year"`
	WeekNumber int        `gorm:"not null" json:"week_number"`
	IsCurrent  bool       `gorm:"not null;default:false" json:"is_current"`
	LockTime   *time.Time `json:"lock_time,omitempty"`

	// Списки храним в JSON-колонках, как и исходная схема:
	// аббревиатуры недоступных команд и id заблокированных игр
	IneligibleTeams []string `gorm:"serializer:json;type:jsonb" json:"ineligible_teams"`
	LockedGames     []uint   `gorm:"serializer:json;type:jsonb" json:"locked_games"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Week) TableName() string {
	return "weeks"
}

// IsLocked возвращает true, если lock_time недели уже наступил.
// Недели без lock_time никогда не блокируются.
func (w *Week) IsLocked(now time.Time) bool {
	if w.LockTime == nil {
		return false
	}
	return !now.UTC().Before(w.LockTime.UTC())
}

// CountdownSeconds возвращает число секунд до lock_time относительно now
// или nil, если lock_time не задан. Значение может быть отрицательным.
func (w *Week) CountdownSeconds(now time.Time) *int {
	if w.LockTime == nil {
		return nil
	}
	seconds := int(w.LockTime.UTC().Sub(now.UTC()).Seconds())
	return &seconds
}
