package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/dto"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

type ListAppointmentsInput struct {
	Principal auth.Principal

	// Date lista um dia; Week lista a semana (segunda a domingo) que contém a data.
	// Sem nenhum dos dois, lista o dia corrente.
	Date string
	Week string

	PlantID *uint
}

type ListAppointments struct {
	repo domain.Repository
	tz   string
	now  func() time.Time
}

func NewListAppointments(
	repo domain.Repository,
	tz string,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
		tz:   tz,
		now:  time.Now,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	p := in.Principal

	from, to, err := uc.period(in)
	if err != nil {
		return nil, err
	}

	f := domain.ListFilter{
		CompanyID: p.CompanyID,
		From:      from,
		To:        to,
		PlantID:   in.PlantID,
	}

	switch p.Role {
	case auth.RoleSupplier:
		if p.SupplierID == nil {
			return []dto.AppointmentListDTO{}, nil
		}
		f.SupplierID = p.SupplierID
	case auth.RolePlant:
		if p.PlantID == nil {
			return []dto.AppointmentListDTO{}, nil
		}
		f.PlantID = p.PlantID
	}

	appointments, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		out = append(out, dto.AppointmentListFrom(&appointments[i]))
	}

	return out, nil
}

func (uc *ListAppointments) period(in ListAppointmentsInput) (time.Time, time.Time, error) {
	if in.Date != "" && in.Week != "" {
		return time.Time{}, time.Time{}, httperr.NewBusiness(
			httperr.CodeInvalidInput,
			"Informe date ou week, não ambos.",
		)
	}

	if in.Week != "" {
		d, err := parseDate(in.Week)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start := WeekStart(d)
		return start, start.AddDate(0, 0, 7), nil
	}

	day := todayIn(uc.now(), uc.tz)
	if in.Date != "" {
		d, err := parseDate(in.Date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		day = d
	}
	return day, day.AddDate(0, 0, 1), nil
}

// WeekStart devolve a segunda-feira da semana de d.
func WeekStart(d time.Time) time.Time {
	d = timezone.Date(d)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
