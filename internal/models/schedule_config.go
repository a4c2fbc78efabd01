package models

import "time"

// ScheduleConfig sobrescreve a disponibilidade de um slot em uma data.
type ScheduleConfig struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_schedule_config_slot,priority:1" json:"company_id"`
	PlantID   uint `gorm:"not null;uniqueIndex:idx_schedule_config_slot,priority:2" json:"plant_id"`

	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_schedule_config_slot,priority:3" json:"date"`
	Time string    `gorm:"size:5;not null;uniqueIndex:idx_schedule_config_slot,priority:4" json:"time"`

	IsAvailable bool   `gorm:"not null" json:"is_available"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSchedule é o bloqueio semanal recorrente.
// DayOfWeek nulo vale para todos os dias (0=domingo..6=sábado).
type DefaultSchedule struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;index" json:"company_id"`
	PlantID   uint `gorm:"not null;index" json:"plant_id"`
	DayOfWeek *int `json:"day_of_week"`

	Time        string `gorm:"size:5;not null" json:"time"`
	IsAvailable bool   `gorm:"not null" json:"is_available"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
