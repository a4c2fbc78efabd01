package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/dock-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	update   *ucAppointment.UpdateAppointment
	delete   *ucAppointment.DeleteAppointment
	checkIn  *ucAppointment.CheckInAppointment
	checkOut *ucAppointment.CheckOutAppointment
	list     *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	del *ucAppointment.DeleteAppointment,
	checkIn *ucAppointment.CheckInAppointment,
	checkOut *ucAppointment.CheckOutAppointment,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		update:   update,
		delete:   del,
		checkIn:  checkIn,
		checkOut: checkOut,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Campos obrigatórios são conferidos pelo validador de domínio (MISSING_FIELDS);
// aqui só o formato.
type CreateAppointmentRequest struct {
	PlantID    uint `json:"plant_id"`
	SupplierID uint `json:"supplier_id"`

	Date    string `json:"date" binding:"omitempty,isodate"`
	Time    string `json:"time" binding:"omitempty,hhmm"`
	TimeEnd string `json:"time_end" binding:"omitempty,hhmm"`

	PurchaseOrder string `json:"purchase_order"`
	TruckPlate    string `json:"truck_plate" binding:"omitempty,plate"`
	DriverName    string `json:"driver_name"`
}

type UpdateAppointmentRequest struct {
	PlantID    *uint `json:"plant_id"`
	SupplierID *uint `json:"supplier_id"`

	Date    *string `json:"date" binding:"omitempty,isodate"`
	Time    *string `json:"time" binding:"omitempty,hhmm"`
	TimeEnd *string `json:"time_end" binding:"omitempty,hhmm"`

	PurchaseOrder *string `json:"purchase_order"`
	TruckPlate    *string `json:"truck_plate" binding:"omitempty,plate"`
	DriverName    *string `json:"driver_name"`

	Reason string `json:"motivo_reagendamento"`
}

// ======================================================
// LIST
// ======================================================

// List aceita ?date=YYYY-MM-DD ou ?week=YYYY-MM-DD, mais ?plant_id opcional.
func (h *AppointmentHandler) List(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	plantID, ok := optionalIDQuery(c, "plant_id")
	if !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Principal: p,
		Date:      c.Query("date"),
		Week:      c.Query("week"),
		PlantID:   plantID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Principal:     p,
		PlantID:       req.PlantID,
		SupplierID:    req.SupplierID,
		Date:          req.Date,
		Time:          req.Time,
		TimeEnd:       req.TimeEnd,
		PurchaseOrder: req.PurchaseOrder,
		TruckPlate:    req.TruckPlate,
		DriverName:    req.DriverName,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE / RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		Principal:     p,
		ID:            id,
		PlantID:       req.PlantID,
		SupplierID:    req.SupplierID,
		Date:          req.Date,
		Time:          req.Time,
		TimeEnd:       req.TimeEnd,
		PurchaseOrder: req.PurchaseOrder,
		TruckPlate:    req.TruckPlate,
		DriverName:    req.DriverName,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), p, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// CHECK-IN / CHECK-OUT
// ======================================================

func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	res, err := h.checkIn.Execute(c.Request.Context(), p, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) CheckOut(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.checkOut.Execute(c.Request.Context(), p, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
