package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// Override é um bloqueio/liberação explícito de um slot.
type Override struct {
	Slot      Clock
	Available bool
	Reason    string
}

// Occupant é um agendamento existente visto pelo contador de capacidade.
type Occupant struct {
	ID     uint
	Start  Clock
	End    Clock
	Ranged bool
}

// Occupies aplica a regra de sobreposição por hora cheia:
// legado ocupa apenas a hora de time; com time_end ocupa toda hora que
// [time, time_end) toca.
func (o Occupant) Occupies(slot Clock) bool {
	slot = slot.Floor()
	if !o.Ranged {
		return o.Start.Floor() == slot
	}
	return o.Start.Floor() <= slot && slot < o.End.Ceil()
}

type DayInput struct {
	Plant          PlantRef
	Date           time.Time
	MaxCapacity    int
	OperatingHours []models.OperatingHours
	Specific       []models.ScheduleConfig
	Weekly         []models.DefaultSchedule
	Appointments   []models.Appointment

	// Vazio = tipo derivado da data; ScheduleHoliday força feriado.
	DayType string
}

// Day é o retrato em memória de uma planta em uma data.
type Day struct {
	Plant    PlantRef
	Date     time.Time
	Capacity int
	Window   Window

	specific  map[int]Override
	weekly    map[int]Override
	occupants []Occupant
}

func BuildDay(in DayInput) (*Day, error) {
	window, err := ResolveOperatingHoursAs(in.OperatingHours, in.Plant, in.Date, in.DayType)
	if err != nil {
		return nil, err
	}

	capacity := in.MaxCapacity
	if capacity <= 0 {
		capacity = 1
	}

	d := &Day{
		Plant:    in.Plant,
		Date:     in.Date,
		Capacity: capacity,
		Window:   window,
		specific: make(map[int]Override),
		weekly:   make(map[int]Override),
	}

	for _, sc := range in.Specific {
		slot, err := ParseClock(sc.Time)
		if err != nil {
			return nil, fmt.Errorf("schedule config %d: %w", sc.ID, err)
		}
		d.specific[slot.Hour()] = Override{Slot: slot.Floor(), Available: sc.IsAvailable, Reason: sc.Reason}
	}

	weekday := int(in.Date.Weekday())
	daySpecific := make(map[int]bool)
	for _, ds := range in.Weekly {
		if ds.DayOfWeek != nil && *ds.DayOfWeek != weekday {
			continue
		}
		slot, err := ParseClock(ds.Time)
		if err != nil {
			return nil, fmt.Errorf("default schedule %d: %w", ds.ID, err)
		}

		h := slot.Hour()
		// A linha do dia específico vence a linha "todos os dias".
		if ds.DayOfWeek == nil && daySpecific[h] {
			continue
		}
		if ds.DayOfWeek != nil {
			daySpecific[h] = true
		}
		d.weekly[h] = Override{Slot: slot.Floor(), Available: ds.IsAvailable, Reason: ds.Reason}
	}

	for i := range in.Appointments {
		occ, err := OccupantOf(&in.Appointments[i])
		if err != nil {
			return nil, err
		}
		d.occupants = append(d.occupants, occ)
	}

	return d, nil
}

func OccupantOf(ap *models.Appointment) (Occupant, error) {
	start, err := ParseClock(ap.Time)
	if err != nil {
		return Occupant{}, fmt.Errorf("appointment %d: %w", ap.ID, err)
	}

	occ := Occupant{ID: ap.ID, Start: start}
	if ap.TimeEnd != nil && *ap.TimeEnd != "" {
		end, err := ParseClock(*ap.TimeEnd)
		if err != nil {
			return Occupant{}, fmt.Errorf("appointment %d: %w", ap.ID, err)
		}
		occ.End = end
		occ.Ranged = true
	}
	return occ, nil
}

func (d *Day) Specific(slot Clock) (Override, bool) {
	o, ok := d.specific[slot.Hour()]
	return o, ok
}

func (d *Day) Weekly(slot Clock) (Override, bool) {
	o, ok := d.weekly[slot.Hour()]
	return o, ok
}

// ForceOpened indica uma liberação explícita por data para o slot.
func (d *Day) ForceOpened(slot Clock) bool {
	o, ok := d.Specific(slot)
	return ok && o.Available
}

func (d *Day) Occupants() []Occupant {
	return d.occupants
}
