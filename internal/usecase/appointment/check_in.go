package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/erp"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type CheckInResult struct {
	Appointment *models.Appointment `json:"appointment"`
	ERPPayload  erp.Payload         `json:"erp_payload"`
}

type CheckInAppointment struct {
	repo      domain.Repository
	publisher erp.Publisher
	audit     *audit.Dispatcher
	tz        string
	log       *zap.Logger
	now       func() time.Time
}

func NewCheckInAppointment(
	repo domain.Repository,
	publisher erp.Publisher,
	audit *audit.Dispatcher,
	tz string,
	log *zap.Logger,
) *CheckInAppointment {
	return &CheckInAppointment{
		repo:      repo,
		publisher: publisher,
		audit:     audit,
		tz:        tz,
		log:       log,
		now:       time.Now,
	}
}

func (uc *CheckInAppointment) Execute(
	ctx context.Context,
	p auth.Principal,
	appointmentID uint,
) (*CheckInResult, error) {

	// --------------------------------------------------
	// 1️⃣ Agendamento
	// --------------------------------------------------
	ap, err := loadVisible(ctx, uc.repo, p, appointmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Transição
	// --------------------------------------------------
	now := uc.now()
	from := ap.Status
	if err := domain.Transition(ap, domain.ActionCheckIn, p.Role, todayIn(now, uc.tz), now); err != nil {
		return nil, err
	}
	// Só um check-in concorrente grava; o outro recebe ILLEGAL_TRANSITION
	// e não publica.
	if err := uc.repo.UpdateAppointment(ctx, ap, from); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Payload ERP
	// --------------------------------------------------
	supplier, err := uc.repo.GetSupplier(ctx, p.CompanyID, ap.SupplierID)
	if err != nil {
		uc.log.Warn("erp payload without supplier",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
		supplier = nil
	}
	payload := erp.NewPayload(ap, supplier, now)

	// Falha na integração não desfaz o check-in.
	if err := uc.publisher.Publish(ctx, p.CompanyID, payload); err != nil {
		uc.log.Error("erp publish failed",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "appointment_checked_in",
		Entity:    entityAppointment,
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"check_in_time": ap.CheckInTime,
		},
	})

	return &CheckInResult{Appointment: ap, ERPPayload: payload}, nil
}
