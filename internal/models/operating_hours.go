package models

import "time"

// OperatingHours define a janela de funcionamento de uma planta
// (ou da empresa inteira quando PlantID é nulo).
type OperatingHours struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	CompanyID uint  `gorm:"not null;uniqueIndex:idx_operating_hours_key,priority:1" json:"company_id"`
	PlantID   *uint `gorm:"uniqueIndex:idx_operating_hours_key,priority:2" json:"plant_id"`

	ScheduleType string `gorm:"size:20;not null;uniqueIndex:idx_operating_hours_key,priority:3" json:"schedule_type"`

	// Só para weekend: 5=sábado, 6=domingo.
	DayOfWeek *int `gorm:"uniqueIndex:idx_operating_hours_key,priority:4" json:"day_of_week"`

	OperatingStart string `gorm:"size:5" json:"operating_start"`
	OperatingEnd   string `gorm:"size:5" json:"operating_end"`
	IsActive       bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OperatingHours) TableName() string {
	return "operating_hours"
}
