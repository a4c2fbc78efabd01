package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

// Draft é a proposta de agendamento (criação ou alteração).
type Draft struct {
	PlantID    uint
	SupplierID uint

	Date    time.Time
	Time    string
	TimeEnd string

	PurchaseOrder string
	TruckPlate    string
	DriverName    string

	// Motivo do reagendamento.
	Reason string
}

type Interval struct {
	Start schedule.Clock
	End   schedule.Clock
}

func (d Draft) Normalize() Draft {
	d.Date = timezone.Date(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.TimeEnd = strings.TrimSpace(d.TimeEnd)
	d.PurchaseOrder = strings.TrimSpace(d.PurchaseOrder)
	d.TruckPlate = strings.ToUpper(strings.TrimSpace(d.TruckPlate))
	d.DriverName = strings.TrimSpace(d.DriverName)
	d.Reason = strings.TrimSpace(d.Reason)
	return d
}

// DraftFrom parte de um agendamento gravado para aplicar alterações parciais.
// Registros legados sem time_end ocupam exatamente uma hora.
func DraftFrom(ap *models.Appointment) Draft {
	d := Draft{
		SupplierID:    ap.SupplierID,
		Date:          ap.Date,
		Time:          ap.Time,
		PurchaseOrder: ap.PurchaseOrder,
		TruckPlate:    ap.TruckPlate,
		DriverName:    ap.DriverName,
	}
	if ap.PlantID != nil {
		d.PlantID = *ap.PlantID
	}
	if end, ok := priorEnd(ap); ok {
		d.TimeEnd = end.String()
	}
	return d
}

// CheckDraft valida uma proposta de criação sem consultar o banco.
func CheckDraft(d Draft, today time.Time) (Interval, error) {
	iv, err := checkShape(d)
	if err != nil {
		return Interval{}, err
	}
	if err := checkNotPast(d, today); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// CheckEdit valida a alteração de prior. Data passada só é recusada
// quando data ou horário mudaram.
func CheckEdit(prior *models.Appointment, d Draft, today time.Time) (Interval, error) {
	iv, err := checkShape(d)
	if err != nil {
		return Interval{}, err
	}
	if ScheduleChanged(prior, d, iv) {
		if err := checkNotPast(d, today); err != nil {
			return Interval{}, err
		}
	}
	return iv, nil
}

func checkShape(d Draft) (Interval, error) {
	if d.TimeEnd == "" {
		return Interval{}, httperr.NewBusiness(httperr.CodeBadInterval, "Horário final é obrigatório.")
	}

	start, err := schedule.ParseClock(d.Time)
	if err != nil {
		return Interval{}, httperr.NewBusiness(httperr.CodeBadInterval, "Horário inicial inválido.")
	}
	end, err := schedule.ParseClock(d.TimeEnd)
	if err != nil {
		return Interval{}, httperr.NewBusiness(httperr.CodeBadInterval, "Horário final inválido.")
	}
	if end <= start {
		return Interval{}, httperr.NewBusiness(
			httperr.CodeBadInterval,
			"Horário final deve ser maior que o inicial.",
		).With("time", start.String()).With("time_end", end.String())
	}

	if d.Date.IsZero() {
		return Interval{}, httperr.NewBusiness(httperr.CodeMissingFields, "Data é obrigatória.").
			With("fields", []string{"date"})
	}
	var missing []string
	if d.PlantID == 0 {
		missing = append(missing, "plant_id")
	}
	if d.SupplierID == 0 {
		missing = append(missing, "supplier_id")
	}
	if d.PurchaseOrder == "" {
		missing = append(missing, "purchase_order")
	}
	if d.TruckPlate == "" {
		missing = append(missing, "truck_plate")
	}
	if d.DriverName == "" {
		missing = append(missing, "driver_name")
	}
	if len(missing) > 0 {
		return Interval{}, httperr.NewBusiness(httperr.CodeMissingFields, "Campos obrigatórios ausentes.").
			With("fields", missing)
	}

	return Interval{Start: start, End: end}, nil
}

func checkNotPast(d Draft, today time.Time) error {
	if timezone.Date(d.Date).Before(timezone.Date(today)) {
		return httperr.NewBusiness(httperr.CodePastDate, "Não é possível agendar em data passada.").
			With("date", d.Date.Format("2006-01-02"))
	}
	return nil
}

func priorEnd(ap *models.Appointment) (schedule.Clock, bool) {
	if ap.TimeEnd != nil && *ap.TimeEnd != "" {
		end, err := schedule.ParseClock(*ap.TimeEnd)
		return end, err == nil
	}
	start, err := schedule.ParseClock(ap.Time)
	if err != nil {
		return 0, false
	}
	return start + schedule.Hour, true
}
