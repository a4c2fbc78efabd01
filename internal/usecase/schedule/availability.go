package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	Principal auth.Principal
	PlantID   uint
	Date      string

	// "" ou "holiday".
	DayType string
}

type Availability struct {
	PlantID  uint              `json:"plant_id"`
	Date     string            `json:"date"`
	Window   string            `json:"operating_window"`
	Capacity int               `json:"max_capacity"`
	Slots    []domain.SlotView `json:"slots"`
}

type GetAvailability struct {
	repo domain.ConfigRepository
	tz   string
	now  func() time.Time
}

func NewGetAvailability(repo domain.ConfigRepository, tz string) *GetAvailability {
	return &GetAvailability{repo: repo, tz: tz, now: time.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*Availability, error) {

	if in.DayType != "" && in.DayType != domain.ScheduleHoliday {
		return nil, invalid("day_type aceita apenas holiday.").With("day_type", in.DayType)
	}

	date := timezone.Date(uc.now().In(timezone.Location(uc.tz)))
	if in.Date != "" {
		d, err := timezone.ParseDate(in.Date)
		if err != nil {
			return nil, invalid("Data inválida, use YYYY-MM-DD.").With("date", in.Date)
		}
		date = d
	}

	plant, err := plantFor(ctx, uc.repo, in.Principal, in.PlantID)
	if err != nil {
		return nil, err
	}

	day, err := uc.repo.LoadDay(ctx, in.Principal.CompanyID, plant, date, in.DayType)
	if err != nil {
		return nil, err
	}

	return &Availability{
		PlantID:  plant.ID,
		Date:     date.Format("2006-01-02"),
		Window:   day.Window.String(),
		Capacity: day.Capacity,
		Slots:    domain.ProjectDay(day),
	}, nil
}
