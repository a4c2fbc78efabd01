package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint `gorm:"not null;index;uniqueIndex:idx_company_appointment_number,priority:1" json:"company_id"`

	// Nulo apenas em registros legados.
	PlantID *uint  `gorm:"index:idx_appointment_plant_date,priority:1" json:"plant_id"`
	Plant   *Plant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plant,omitempty"`

	SupplierID uint      `gorm:"not null;index" json:"supplier_id"`
	Supplier   *Supplier `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"supplier,omitempty"`

	Date time.Time `gorm:"type:date;not null;index:idx_appointment_plant_date,priority:2" json:"date"`
	Time string    `gorm:"size:5;not null" json:"time"`

	// Ausente em registros legados de slot único.
	TimeEnd *string `gorm:"size:5" json:"time_end"`

	PurchaseOrder string `gorm:"size:100;not null" json:"purchase_order"`
	TruckPlate    string `gorm:"size:20;not null" json:"truck_plate"`
	DriverName    string `gorm:"size:100;not null" json:"driver_name"`

	Status           string `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	RescheduleReason string `gorm:"column:motivo_reagendamento;type:text" json:"motivo_reagendamento"`

	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`

	AppointmentNumber *string `gorm:"size:20;uniqueIndex:idx_company_appointment_number,priority:2" json:"appointment_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
