package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

var ErrDayRequired = errors.New("day snapshot required for slot validation")

type ValidationInput struct {
	CompanyID uint
	Draft     Draft

	// Nil na criação.
	Prior *models.Appointment

	Plant    *models.Plant
	Supplier *models.Supplier

	// Retrato da planta/data propostas.
	Day *schedule.Day

	Today time.Time
}

// Validate decide se a proposta é aceita e devolve o registro pronto
// para gravação. Nada é persistido aqui.
func Validate(in ValidationInput) (*models.Appointment, error) {
	d := in.Draft.Normalize()

	// --------------------------------------------------
	// 1️⃣ Estrutura + planta/fornecedor
	// --------------------------------------------------
	var (
		iv  Interval
		err error
	)
	if in.Prior != nil {
		iv, err = CheckEdit(in.Prior, d, in.Today)
	} else {
		iv, err = CheckDraft(d, in.Today)
	}
	if err != nil {
		return nil, err
	}
	if err := checkPlant(in.CompanyID, d.PlantID, in.Plant); err != nil {
		return nil, err
	}
	if err := checkSupplier(in.CompanyID, d.SupplierID, in.Supplier); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Reagendamento
	// --------------------------------------------------
	var out models.Appointment
	revalidate := true
	changed := false

	if in.Prior != nil {
		if err := Transition(in.Prior, ActionUpdate, "", in.Today, in.Today); err != nil {
			return nil, err
		}

		changed = ScheduleChanged(in.Prior, d, iv)
		if changed && d.Reason == "" {
			return nil, httperr.NewBusiness(
				httperr.CodeRescheduleReasonRequired,
				"Informe o motivo do reagendamento.",
			)
		}

		out = *in.Prior
		out.Plant = nil
		out.Supplier = nil
		if changed {
			out.Status = string(StatusRescheduled)
			out.RescheduleReason = d.Reason
		}

		plantChanged := in.Prior.PlantID == nil || *in.Prior.PlantID != d.PlantID
		revalidate = changed || plantChanged
	} else {
		out = models.Appointment{
			CompanyID: in.CompanyID,
			Status:    string(InitialStatus()),
		}
	}

	plantID := d.PlantID
	out.PlantID = &plantID
	out.SupplierID = d.SupplierID

	// Sem mudança de horário o registro legado continua sem time_end.
	if in.Prior == nil || changed {
		timeEnd := iv.End.String()
		out.Date = d.Date
		out.Time = iv.Start.String()
		out.TimeEnd = &timeEnd
	}
	out.PurchaseOrder = d.PurchaseOrder
	out.TruckPlate = d.TruckPlate
	out.DriverName = d.DriverName

	if !revalidate {
		return &out, nil
	}

	if in.Day == nil {
		return nil, ErrDayRequired
	}

	// --------------------------------------------------
	// 3️⃣ Horário de funcionamento + bloqueios
	// --------------------------------------------------
	if err := CheckSlots(in.Day, iv); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Capacidade
	// --------------------------------------------------
	var exclude uint
	if in.Prior != nil {
		exclude = in.Prior.ID
	}
	if slot, full := in.Day.FirstOverCapacity(iv.Start, iv.End, exclude); full {
		return nil, httperr.NewBusiness(
			httperr.CodeCapacityExceeded,
			fmt.Sprintf("Capacidade esgotada às %s.", slot),
		).AtSlot(slot.String()).
			With("max_capacity", in.Day.Capacity).
			With("occupancy", in.Day.Occupancy(slot, exclude))
	}

	return &out, nil
}

// CheckSlots exige que todas as horas tocadas pelo intervalo estejam
// liberadas e que o término caiba na janela de funcionamento.
func CheckSlots(day *schedule.Day, iv Interval) error {
	slots := schedule.HoursTouched(iv.Start, iv.End)

	for _, slot := range slots {
		dec := schedule.ResolveSlot(day, slot, false)
		if dec.Available {
			continue
		}

		if dec.Cause == schedule.CauseBlocked {
			return httperr.NewBusiness(
				httperr.CodeBlockedSlot,
				fmt.Sprintf("Horário %s bloqueado: %s.", slot, dec.Reason),
			).AtSlot(slot.String()).
				With("reason", dec.Reason).
				With("source", string(dec.Source))
		}
		return outsideHours(day.Window, slot)
	}

	last := slots[len(slots)-1]
	if !day.Window.AllowsEnd(iv.End) && !day.ForceOpened(last) {
		return outsideHours(day.Window, last)
	}
	return nil
}

func outsideHours(w schedule.Window, slot schedule.Clock) error {
	err := httperr.NewBusiness(
		httperr.CodeOutsideOperatingHours,
		fmt.Sprintf("Horário %s fora do funcionamento (%s).", slot, w),
	).AtSlot(slot.String()).With("window", w.String())
	if w.Reason != "" {
		err = err.With("reason", w.Reason)
	}
	return err
}

func checkPlant(companyID, plantID uint, plant *models.Plant) error {
	if plant == nil || plant.ID != plantID || plant.CompanyID != companyID {
		return httperr.NewBusiness(httperr.CodePlantNotFound, "Planta não encontrada.")
	}
	if !plant.IsActive {
		return httperr.NewBusiness(httperr.CodePlantInactive, "Planta inativa.")
	}
	return nil
}

func checkSupplier(companyID, supplierID uint, supplier *models.Supplier) error {
	if supplier == nil || supplier.ID != supplierID || supplier.CompanyID != companyID {
		return httperr.NewBusiness(httperr.CodeSupplierNotFound, "Fornecedor não encontrado.")
	}
	if !supplier.IsActive {
		return httperr.NewBusiness(httperr.CodeSupplierInactive, "Fornecedor inativo.")
	}
	return nil
}

// ScheduleChanged indica se data, início ou término mudaram em relação a prior.
func ScheduleChanged(prior *models.Appointment, d Draft, iv Interval) bool {
	if !timezone.Date(prior.Date).Equal(d.Date) {
		return true
	}

	start, err := schedule.ParseClock(prior.Time)
	if err != nil || start != iv.Start {
		return true
	}

	end, ok := priorEnd(prior)
	return !ok || end != iv.End
}
