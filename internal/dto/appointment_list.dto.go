package dto

import (
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID                uint       `json:"id"`
	AppointmentNumber *string    `json:"appointment_number"`
	Date              string     `json:"date"`
	Time              string     `json:"time"`
	TimeEnd           *string    `json:"time_end"`
	Status            string     `json:"status"`
	PlantID           *uint      `json:"plant_id"`
	PlantName         string     `json:"plant_name"`
	SupplierID        uint       `json:"supplier_id"`
	SupplierName      string     `json:"supplier_name"`
	PurchaseOrder     string     `json:"purchase_order"`
	TruckPlate        string     `json:"truck_plate"`
	DriverName        string     `json:"driver_name"`
	CheckInTime       *time.Time `json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time"`
}

func AppointmentListFrom(ap *models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:                ap.ID,
		AppointmentNumber: ap.AppointmentNumber,
		Date:              ap.Date.Format("2006-01-02"),
		Time:              ap.Time,
		TimeEnd:           ap.TimeEnd,
		Status:            ap.Status,
		PlantID:           ap.PlantID,
		SupplierID:        ap.SupplierID,
		PurchaseOrder:     ap.PurchaseOrder,
		TruckPlate:        ap.TruckPlate,
		DriverName:        ap.DriverName,
		CheckInTime:       ap.CheckInTime,
		CheckOutTime:      ap.CheckOutTime,
	}
	if ap.Plant != nil {
		out.PlantName = ap.Plant.Name
	}
	if ap.Supplier != nil {
		out.SupplierName = ap.Supplier.Description
	}
	return out
}
