package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleConfigInput struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
	Reason      string `json:"reason"`
}

type DefaultScheduleInput struct {
	// Nulo = todos os dias (0=domingo..6=sábado).
	DayOfWeek   *int   `json:"day_of_week"`
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
	Reason      string `json:"reason"`
}

// ======================================================
// USE CASE
// ======================================================

// Overrides gerencia bloqueios/liberações por data e semanais.
type Overrides struct {
	repo  domain.ConfigRepository
	audit *audit.Dispatcher
}

func NewOverrides(repo domain.ConfigRepository, audit *audit.Dispatcher) *Overrides {
	return &Overrides{repo: repo, audit: audit}
}

// slotOf normaliza o horário para o início da hora ("HH:00").
func slotOf(s string) (string, error) {
	c, err := domain.ParseClock(s)
	if err != nil || c >= domain.EndOfDay {
		return "", invalid("Horário inválido, use HH:MM.").With("time", s)
	}
	return c.Floor().String(), nil
}

// --------------------------------------------------
// Schedule config (por data)
// --------------------------------------------------

// ListScheduleConfigs lista [from, from+days).
func (uc *Overrides) ListScheduleConfigs(
	ctx context.Context,
	p auth.Principal,
	plantID uint,
	from string,
	days int,
) ([]models.ScheduleConfig, error) {

	start, err := timezone.ParseDate(from)
	if err != nil {
		return nil, invalid("Data inválida, use YYYY-MM-DD.").With("date", from)
	}
	if days <= 0 {
		days = 1
	}

	if _, err := plantFor(ctx, uc.repo, p, plantID); err != nil {
		return nil, err
	}
	return uc.repo.ListScheduleConfigs(ctx, p.CompanyID, plantID, start, start.AddDate(0, 0, days))
}

func (uc *Overrides) UpsertScheduleConfig(
	ctx context.Context,
	p auth.Principal,
	plantID uint,
	in ScheduleConfigInput,
) (*models.ScheduleConfig, error) {

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, invalid("Data inválida, use YYYY-MM-DD.").With("date", in.Date)
	}
	slot, err := slotOf(in.Time)
	if err != nil {
		return nil, err
	}

	if _, err := plantFor(ctx, uc.repo, p, plantID); err != nil {
		return nil, err
	}

	sc := &models.ScheduleConfig{
		CompanyID:   p.CompanyID,
		PlantID:     plantID,
		Date:        date,
		Time:        slot,
		IsAvailable: in.IsAvailable,
		Reason:      in.Reason,
	}
	if err := uc.repo.UpsertScheduleConfig(ctx, sc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "schedule_config_saved",
		Entity:    "schedule_config",
		EntityID:  &sc.ID,
		Metadata:  in,
	})

	return sc, nil
}

func (uc *Overrides) DeleteScheduleConfig(
	ctx context.Context,
	p auth.Principal,
	id uint,
) error {

	if err := uc.repo.DeleteScheduleConfig(ctx, p.CompanyID, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "schedule_config_deleted",
		Entity:    "schedule_config",
		EntityID:  &id,
	})
	return nil
}

// --------------------------------------------------
// Default schedule (semanal)
// --------------------------------------------------

func (uc *Overrides) ListDefaultSchedules(
	ctx context.Context,
	p auth.Principal,
	plantID uint,
) ([]models.DefaultSchedule, error) {

	if _, err := plantFor(ctx, uc.repo, p, plantID); err != nil {
		return nil, err
	}
	return uc.repo.ListDefaultSchedules(ctx, p.CompanyID, plantID)
}

func (uc *Overrides) UpsertDefaultSchedule(
	ctx context.Context,
	p auth.Principal,
	plantID uint,
	in DefaultScheduleInput,
) (*models.DefaultSchedule, error) {

	if in.DayOfWeek != nil && (*in.DayOfWeek < int(time.Sunday) || *in.DayOfWeek > int(time.Saturday)) {
		return nil, invalid("day_of_week deve estar entre 0 (domingo) e 6 (sábado).").
			With("day_of_week", *in.DayOfWeek)
	}
	slot, err := slotOf(in.Time)
	if err != nil {
		return nil, err
	}

	if _, err := plantFor(ctx, uc.repo, p, plantID); err != nil {
		return nil, err
	}

	ds := &models.DefaultSchedule{
		CompanyID:   p.CompanyID,
		PlantID:     plantID,
		DayOfWeek:   in.DayOfWeek,
		Time:        slot,
		IsAvailable: in.IsAvailable,
		Reason:      in.Reason,
	}
	if err := uc.repo.UpsertDefaultSchedule(ctx, ds); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "default_schedule_saved",
		Entity:    "default_schedule",
		EntityID:  &ds.ID,
		Metadata:  in,
	})

	return ds, nil
}

func (uc *Overrides) DeleteDefaultSchedule(
	ctx context.Context,
	p auth.Principal,
	id uint,
) error {

	if err := uc.repo.DeleteDefaultSchedule(ctx, p.CompanyID, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "default_schedule_deleted",
		Entity:    "default_schedule",
		EntityID:  &id,
	})
	return nil
}
