package models

import "time"

type Supplier struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CompanyID uint    `gorm:"not null;index;uniqueIndex:idx_company_supplier_cnpj,priority:1" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CNPJ        string `gorm:"column:cnpj;size:18;not null;uniqueIndex:idx_company_supplier_cnpj,priority:2" json:"cnpj"`
	Description string `gorm:"size:150;not null" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
