package erp

import (
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// Payload é o registro de check-in entregue ao ERP.
type Payload struct {
	AppointmentID     uint       `json:"appointment_id"`
	AppointmentNumber string     `json:"appointment_number"`
	SupplierCNPJ      string     `json:"supplier_cnpj"`
	SupplierName      string     `json:"supplier_name"`
	PurchaseOrder     string     `json:"purchase_order"`
	TruckPlate        string     `json:"truck_plate"`
	DriverName        string     `json:"driver_name"`
	ScheduledDate     string     `json:"scheduled_date"`
	ScheduledTime     string     `json:"scheduled_time"`
	CheckInTime       *time.Time `json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time"`
	Status            string     `json:"status"`
	Timestamp         time.Time  `json:"timestamp"`
}

func NewPayload(ap *models.Appointment, supplier *models.Supplier, now time.Time) Payload {
	p := Payload{
		AppointmentID: ap.ID,
		PurchaseOrder: ap.PurchaseOrder,
		TruckPlate:    ap.TruckPlate,
		DriverName:    ap.DriverName,
		ScheduledDate: ap.Date.Format("2006-01-02"),
		ScheduledTime: ap.Time,
		CheckInTime:   ap.CheckInTime,
		CheckOutTime:  ap.CheckOutTime,
		Status:        ap.Status,
		Timestamp:     now.UTC(),
	}
	if ap.AppointmentNumber != nil {
		p.AppointmentNumber = *ap.AppointmentNumber
	}
	if supplier != nil {
		p.SupplierCNPJ = supplier.CNPJ
		p.SupplierName = supplier.Description
	}
	return p
}
