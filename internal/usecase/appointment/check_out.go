package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type CheckOutAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
	now   func() time.Time
}

func NewCheckOutAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CheckOutAppointment {
	return &CheckOutAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
		now:   time.Now,
	}
}

func (uc *CheckOutAppointment) Execute(
	ctx context.Context,
	p auth.Principal,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := loadVisible(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	from := ap.Status
	if err := domain.Transition(ap, domain.ActionCheckOut, p.Role, todayIn(now, uc.tz), now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, from); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "appointment_checked_out",
		Entity:    entityAppointment,
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"check_out_time": ap.CheckOutTime,
		},
	})

	return ap, nil
}
