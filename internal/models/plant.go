package models

import "time"

type Plant struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"not null;index;uniqueIndex:idx_company_plant_name,priority:1" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name     string `gorm:"size:100;not null;uniqueIndex:idx_company_plant_name,priority:2" json:"name"`
	Code     string `gorm:"size:30" json:"code"`
	IsActive bool   `gorm:"not null" json:"is_active"`

	// Caminhões simultâneos por slot de uma hora.
	MaxCapacity int `gorm:"not null;default:1" json:"max_capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
