package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
	ucSchedule "github.com/BruksfildServices01/dock-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type PlantScheduleHandler struct {
	availability *ucSchedule.GetAvailability
	hours        *ucSchedule.OperatingHours
	overrides    *ucSchedule.Overrides
	capacity     *ucSchedule.Capacity
	tz           string
}

func NewPlantScheduleHandler(
	availability *ucSchedule.GetAvailability,
	hours *ucSchedule.OperatingHours,
	overrides *ucSchedule.Overrides,
	capacity *ucSchedule.Capacity,
	tz string,
) *PlantScheduleHandler {
	return &PlantScheduleHandler{
		availability: availability,
		hours:        hours,
		overrides:    overrides,
		capacity:     capacity,
		tz:           tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OperatingHoursRequest struct {
	Hours []ucSchedule.OperatingHoursRow `json:"hours" binding:"required"`
}

type ScheduleConfigRequest struct {
	Date        string `json:"date" binding:"required,isodate"`
	Time        string `json:"time" binding:"required,hhmm"`
	IsAvailable bool   `json:"is_available"`
	Reason      string `json:"reason"`
}

type DefaultScheduleRequest struct {
	DayOfWeek   *int   `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Time        string `json:"time" binding:"required,hhmm"`
	IsAvailable bool   `json:"is_available"`
	Reason      string `json:"reason"`
}

type MaxCapacityRequest struct {
	MaxCapacity int `json:"max_capacity" binding:"required"`
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability devolve as 24 faixas do dia (?date, ?day_type=holiday).
func (h *PlantScheduleHandler) Availability(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), ucSchedule.AvailabilityInput{
		Principal: p,
		PlantID:   plantID,
		Date:      c.Query("date"),
		DayType:   c.Query("day_type"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// OPERATING HOURS
// ======================================================

func (h *PlantScheduleHandler) GetOperatingHours(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.hours.List(c.Request.Context(), p, plantID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *PlantScheduleHandler) SaveOperatingHours(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req OperatingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	rows, err := h.hours.Save(c.Request.Context(), p, plantID, req.Hours)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// SCHEDULE CONFIG (data específica)
// ======================================================

// ListScheduleConfigs aceita ?from=YYYY-MM-DD (padrão hoje) e ?days (padrão 7).
func (h *PlantScheduleHandler) ListScheduleConfigs(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	from := c.Query("from")
	if from == "" {
		from = timezone.TodayIn(h.tz).Format("2006-01-02")
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 || days > 366 {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "days deve estar entre 1 e 366.")
		return
	}

	rows, err := h.overrides.ListScheduleConfigs(c.Request.Context(), p, plantID, from, days)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *PlantScheduleHandler) UpsertScheduleConfig(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ScheduleConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	row, err := h.overrides.UpsertScheduleConfig(c.Request.Context(), p, plantID, ucSchedule.ScheduleConfigInput{
		Date:        req.Date,
		Time:        req.Time,
		IsAvailable: req.IsAvailable,
		Reason:      req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, row)
}

func (h *PlantScheduleHandler) DeleteScheduleConfig(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.overrides.DeleteScheduleConfig(c.Request.Context(), p, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// DEFAULT SCHEDULE (semanal)
// ======================================================

func (h *PlantScheduleHandler) ListDefaultSchedules(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	rows, err := h.overrides.ListDefaultSchedules(c.Request.Context(), p, plantID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *PlantScheduleHandler) UpsertDefaultSchedule(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req DefaultScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	row, err := h.overrides.UpsertDefaultSchedule(c.Request.Context(), p, plantID, ucSchedule.DefaultScheduleInput{
		DayOfWeek:   req.DayOfWeek,
		Time:        req.Time,
		IsAvailable: req.IsAvailable,
		Reason:      req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, row)
}

func (h *PlantScheduleHandler) DeleteDefaultSchedule(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.overrides.DeleteDefaultSchedule(c.Request.Context(), p, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// MAX CAPACITY
// ======================================================

func (h *PlantScheduleHandler) GetMaxCapacity(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	n, err := h.capacity.Get(c.Request.Context(), p, plantID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"plant_id": plantID, "max_capacity": n})
}

func (h *PlantScheduleHandler) SetMaxCapacity(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	plantID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req MaxCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.capacity.Set(c.Request.Context(), p, plantID, req.MaxCapacity); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"plant_id": plantID, "max_capacity": req.MaxCapacity})
}
