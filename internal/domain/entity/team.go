package entity

// Team представляет франшизу лиги. Справочная сущность:
// заполняется миграцией-сидом и не меняется во время сезона.
type Team struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Abbreviation string `gorm:"size:4;not null;uniqueIndex" json:"abbreviation"`
	Name         string `gorm:"size:100;not null" json:"name"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	Conference   string `gorm:"size:10" json:"conference,omitempty"`
	Division     string `gorm:"size:10" json:"division,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}
