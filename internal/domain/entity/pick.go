package entity

import "time"

// Результаты пика, проставляемые финализацией
const (
	PickResultWin  = "win"
	PickResultLoss = "loss"
)

// Pick представляет выбор команды одной заявкой на одну неделю.
// Уникален в рамках (entry_id, week_id).
type Pick struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	EntryID uint `gorm:"not null;index;uniqueIndex:uq_picks_entry_week" json:"entry_id"`
	WeekID  uint `gorm:"not null;index;uniqueIndex:uq_picks_entry_week" json:"week_id"`

	TeamID   *uint  `gorm:"index" json:"team_id,omitempty"`
	TeamAbbr string `gorm:"size:4;index" json:"team_abbr,omitempty"`

	// result: NULL до финализации, затем "win" или "loss"
	Result *string `gorm:"size:10" json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Pick) TableName() string {
	return "picks"
}
