package schedule

import (
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

const plantA uint = 7

var (
	monday   = time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
)

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func weekdaysRow(plantID *uint, start, end string, active bool) models.OperatingHours {
	return models.OperatingHours{
		CompanyID:      1,
		PlantID:        plantID,
		ScheduleType:   ScheduleWeekdays,
		OperatingStart: start,
		OperatingEnd:   end,
		IsActive:       active,
	}
}

func weekendRow(plantID *uint, code int, start, end string, active bool) models.OperatingHours {
	return models.OperatingHours{
		CompanyID:      1,
		PlantID:        plantID,
		ScheduleType:   ScheduleWeekend,
		DayOfWeek:      intPtr(code),
		OperatingStart: start,
		OperatingEnd:   end,
		IsActive:       active,
	}
}

func ranged(id uint, start, end string) models.Appointment {
	return models.Appointment{ID: id, PlantID: uintPtr(plantA), Time: start, TimeEnd: strPtr(end)}
}

func legacy(id uint, start string) models.Appointment {
	return models.Appointment{ID: id, PlantID: uintPtr(plantA), Time: start}
}
