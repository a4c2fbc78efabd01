package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
	now   func() time.Time
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
		now:   time.Now,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	p auth.Principal,
	appointmentID uint,
) error {

	ap, err := loadVisible(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return err
	}

	now := uc.now()
	if err := domain.Transition(ap, domain.ActionDelete, p.Role, todayIn(now, uc.tz), now); err != nil {
		return err
	}

	// Falha se um check-in concorrente mudou o status depois da leitura.
	if err := uc.repo.DeleteAppointment(ctx, p.CompanyID, ap.ID, ap.Status); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "appointment_deleted",
		Entity:    entityAppointment,
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"appointment_number": ap.AppointmentNumber,
			"status":             ap.Status,
		},
	})

	return nil
}
