package models

import "time"

type Permission struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	CompanyID      uint   `gorm:"not null;uniqueIndex:idx_permission_key,priority:1" json:"company_id"`
	Role           string `gorm:"size:20;not null;uniqueIndex:idx_permission_key,priority:2" json:"role"`
	FunctionID     string `gorm:"size:50;not null;uniqueIndex:idx_permission_key,priority:3" json:"function_id"`
	PermissionType string `gorm:"size:10;not null" json:"permission_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
