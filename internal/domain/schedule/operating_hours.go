package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

const (
	ScheduleWeekdays = "weekdays"
	ScheduleWeekend  = "weekend"
	ScheduleHoliday  = "holiday"
)

func ValidScheduleType(t string) bool {
	switch t {
	case ScheduleWeekdays, ScheduleWeekend, ScheduleHoliday:
		return true
	}
	return false
}

type WindowKind int

const (
	Unrestricted WindowKind = iota
	Open
	Closed
)

func (k WindowKind) String() string {
	switch k {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unrestricted"
	}
}

// Window é a janela de funcionamento efetiva de uma planta em um dia.
type Window struct {
	Kind         WindowKind
	Start        Clock
	End          Clock
	ScheduleType string
	Reason       string
}

// Contains indica se o slot começa dentro da janela.
func (w Window) Contains(slot Clock) bool {
	switch w.Kind {
	case Open:
		return slot >= w.Start && slot < w.End
	case Closed:
		return false
	default:
		return true
	}
}

// AllowsEnd indica se um agendamento pode terminar em end.
func (w Window) AllowsEnd(end Clock) bool {
	if w.Kind != Open {
		return w.Kind == Unrestricted
	}
	return end <= w.End
}

func (w Window) String() string {
	switch w.Kind {
	case Open:
		return fmt.Sprintf("%s-%s", w.Start, w.End)
	case Closed:
		return "closed"
	default:
		return "24h"
	}
}

// ------------------------------------------------------
// Codificação do dia da semana
// ------------------------------------------------------
// Internamente usamos time.Weekday (0=domingo..6=sábado).
// A tabela operating_hours grava fins de semana como 5=sábado e 6=domingo;
// a tradução acontece somente aqui.

const (
	weekendSaturday = 5
	weekendSunday   = 6
)

func weekendCode(d time.Weekday) (int, bool) {
	switch d {
	case time.Saturday:
		return weekendSaturday, true
	case time.Sunday:
		return weekendSunday, true
	}
	return 0, false
}

func weekdayFromWeekendCode(code int) (time.Weekday, bool) {
	switch code {
	case weekendSaturday:
		return time.Saturday, true
	case weekendSunday:
		return time.Sunday, true
	}
	return 0, false
}

// WeekendCode expõe a tradução para quem grava linhas de weekend.
func WeekendCode(d time.Weekday) (int, bool) {
	return weekendCode(d)
}

// WeekendDay é o inverso de WeekendCode.
func WeekendDay(code int) (time.Weekday, bool) {
	return weekdayFromWeekendCode(code)
}

// ------------------------------------------------------
// Resolver
// ------------------------------------------------------

// ResolveOperatingHours devolve a janela efetiva para plant em date.
// rows já devem estar filtradas pela empresa.
func ResolveOperatingHours(rows []models.OperatingHours, plant PlantRef, date time.Time) (Window, error) {
	plantID, ok := plant.ID()
	if !ok {
		return Window{Kind: Unrestricted}, nil
	}

	if code, weekend := weekendCode(date.Weekday()); weekend {
		row := pickRow(rows, plantID, ScheduleWeekend, &code)
		if row == nil {
			return Window{Kind: Closed, ScheduleType: ScheduleWeekend, Reason: "weekend not configured"}, nil
		}
		if !row.IsActive {
			return Window{Kind: Closed, ScheduleType: ScheduleWeekend, Reason: "weekend operation disabled"}, nil
		}
		return openWindow(row)
	}

	row := pickRow(rows, plantID, ScheduleWeekdays, nil)
	if row == nil || !row.IsActive {
		return Window{Kind: Unrestricted, ScheduleType: ScheduleWeekdays}, nil
	}
	return openWindow(row)
}

// ResolveOperatingHoursAs avalia date como um tipo de dia explícito.
// Só feriado é suportado; sem linha ativa de feriado vale a regra normal.
func ResolveOperatingHoursAs(rows []models.OperatingHours, plant PlantRef, date time.Time, scheduleType string) (Window, error) {
	if scheduleType != ScheduleHoliday {
		return ResolveOperatingHours(rows, plant, date)
	}

	plantID, ok := plant.ID()
	if !ok {
		return Window{Kind: Unrestricted}, nil
	}

	if row := pickRow(rows, plantID, ScheduleHoliday, nil); row != nil && row.IsActive {
		return openWindow(row)
	}
	return ResolveOperatingHours(rows, plant, date)
}

// pickRow prefere linhas da planta; a linha global da empresa só vale
// quando a planta não tem nenhuma linha daquele tipo/dia.
func pickRow(rows []models.OperatingHours, plantID uint, scheduleType string, day *int) *models.OperatingHours {
	var plantRow, globalRow *models.OperatingHours

	for i := range rows {
		r := &rows[i]
		if r.ScheduleType != scheduleType || !sameDay(r.DayOfWeek, day) {
			continue
		}

		switch {
		case r.PlantID != nil && *r.PlantID == plantID:
			if plantRow == nil || (!plantRow.IsActive && r.IsActive) {
				plantRow = r
			}
		case r.PlantID == nil:
			if globalRow == nil || (!globalRow.IsActive && r.IsActive) {
				globalRow = r
			}
		}
	}

	if plantRow != nil {
		return plantRow
	}
	return globalRow
}

func sameDay(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func openWindow(row *models.OperatingHours) (Window, error) {
	start, err := ParseClock(row.OperatingStart)
	if err != nil {
		return Window{}, fmt.Errorf("operating hours %d: %w", row.ID, err)
	}
	end, err := ParseClock(row.OperatingEnd)
	if err != nil {
		return Window{}, fmt.Errorf("operating hours %d: %w", row.ID, err)
	}
	if end <= start {
		return Window{Kind: Closed, ScheduleType: row.ScheduleType, Reason: "empty operating window"}, nil
	}

	return Window{
		Kind:         Open,
		Start:        start,
		End:          end,
		ScheduleType: row.ScheduleType,
	}, nil
}
