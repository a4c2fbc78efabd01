package schedule

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type OperatingHoursRow struct {
	ScheduleType   string `json:"schedule_type"`
	DayOfWeek      *int   `json:"day_of_week"`
	OperatingStart string `json:"operating_start"`
	OperatingEnd   string `json:"operating_end"`
	IsActive       bool   `json:"is_active"`
}

type OperatingHours struct {
	repo  domain.ConfigRepository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewOperatingHours(
	repo domain.ConfigRepository,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *OperatingHours {
	return &OperatingHours{repo: repo, audit: audit, log: log}
}

// List devolve as linhas da planta e as globais da empresa.
func (uc *OperatingHours) List(
	ctx context.Context,
	p auth.Principal,
	plantID uint,
) ([]models.OperatingHours, error) {

	if _, err := plantFor(ctx, uc.repo, p, plantID); err != nil {
		return nil, err
	}
	return uc.repo.ListOperatingHours(ctx, p.CompanyID, plantID)
}

func (uc *OperatingHours) Save(
	ctx context.Context,
	p auth.Principal,
	plantID uint,
	in []OperatingHoursRow,
) ([]models.OperatingHours, error) {

	// --------------------------------------------------
	// 1️⃣ Validação das linhas
	// --------------------------------------------------
	if len(in) == 0 {
		return nil, invalid("Nenhum horário informado.")
	}

	rows := make([]models.OperatingHours, 0, len(in))
	for i, r := range in {
		row, err := checkRow(i, r)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	// --------------------------------------------------
	// 2️⃣ Planta + gravação
	// --------------------------------------------------
	if _, err := plantFor(ctx, uc.repo, p, plantID); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveOperatingHours(ctx, p.CompanyID, plantID, rows); err != nil {
		return nil, err
	}

	uc.log.Info("operating hours saved",
		zap.Uint("company_id", p.CompanyID),
		zap.Uint("plant_id", plantID),
		zap.Int("rows", len(rows)),
	)
	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "operating_hours_saved",
		Entity:    "plant",
		EntityID:  &plantID,
		Metadata:  in,
	})

	return uc.repo.ListOperatingHours(ctx, p.CompanyID, plantID)
}

func checkRow(i int, r OperatingHoursRow) (models.OperatingHours, error) {
	bad := func(message string) httperr.BusinessError {
		return invalid(message).With("index", i)
	}

	if !domain.ValidScheduleType(r.ScheduleType) {
		return models.OperatingHours{}, bad("schedule_type inválido.").With("schedule_type", r.ScheduleType)
	}

	if r.ScheduleType == domain.ScheduleWeekend {
		if r.DayOfWeek == nil {
			return models.OperatingHours{}, bad("Fim de semana exige day_of_week (5=sábado, 6=domingo).")
		}
		if _, ok := domain.WeekendDay(*r.DayOfWeek); !ok {
			return models.OperatingHours{}, bad("day_of_week inválido para fim de semana.").With("day_of_week", *r.DayOfWeek)
		}
	} else if r.DayOfWeek != nil {
		return models.OperatingHours{}, bad("day_of_week só se aplica a weekend.")
	}

	row := models.OperatingHours{
		ScheduleType: r.ScheduleType,
		DayOfWeek:    r.DayOfWeek,
		IsActive:     r.IsActive,
	}

	// Linha inativa pode vir sem horário.
	if !r.IsActive && r.OperatingStart == "" && r.OperatingEnd == "" {
		return row, nil
	}

	start, err := domain.ParseClock(r.OperatingStart)
	if err != nil {
		return models.OperatingHours{}, bad("operating_start inválido.").With("operating_start", r.OperatingStart)
	}
	end, err := domain.ParseClock(r.OperatingEnd)
	if err != nil {
		return models.OperatingHours{}, bad("operating_end inválido.").With("operating_end", r.OperatingEnd)
	}
	if end <= start {
		return models.OperatingHours{}, bad("operating_end deve ser maior que operating_start.")
	}

	row.OperatingStart = start.String()
	row.OperatingEnd = end.String()
	return row, nil
}
