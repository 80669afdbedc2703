package entity

import "time"

// Статусы игры
const (
	GameStatusScheduled  = "scheduled"
	GameStatusInProgress = "in_progress"
	GameStatusFinal      = "final"
)

// Game представляет один матч внутри недели
type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WeekID    uint      `gorm:"not null;index" json:"week_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`

	// Денормализованные аббревиатуры — снимок для отображения и истории
	HomeTeamAbbr string `gorm:"size:4;index" json:"home_team_abbr"`
	AwayTeamAbbr string `gorm:"size:4;index" json:"away_team_abbr"`

	// Канонические ссылки на teams.id для целостности
	HomeTeamID *uint `gorm:"index" json:"home_team_id,omitempty"`
	AwayTeamID *uint `gorm:"index" json:"away_team_id,omitempty"`

	Status    string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
	IsFinal   bool   `gorm:"not null;default:false" json:"is_final"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}

// IsFinalWithScores возвращает true для завершенной игры с известным счетом
func (g *Game) IsFinalWithScores() bool {
	return g.Status == GameStatusFinal && g.HomeScore != nil && g.AwayScore != nil
}
