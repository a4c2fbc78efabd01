package appointment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/lock"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput traz apenas os campos alterados; nil mantém o valor atual.
type UpdateAppointmentInput struct {
	Principal auth.Principal
	ID        uint

	PlantID    *uint
	SupplierID *uint

	Date    *string
	Time    *string
	TimeEnd *string

	PurchaseOrder *string
	TruckPlate    *string
	DriverName    *string

	Reason string
}

func (in UpdateAppointmentInput) apply(d domain.Draft) (domain.Draft, error) {
	if in.PlantID != nil {
		d.PlantID = *in.PlantID
	}
	if in.SupplierID != nil {
		d.SupplierID = *in.SupplierID
	}
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return d, err
		}
		d.Date = date
	}
	if in.Time != nil {
		d.Time = *in.Time
	}
	if in.TimeEnd != nil {
		d.TimeEnd = *in.TimeEnd
	}
	if in.PurchaseOrder != nil {
		d.PurchaseOrder = *in.PurchaseOrder
	}
	if in.TruckPlate != nil {
		d.TruckPlate = *in.TruckPlate
	}
	if in.DriverName != nil {
		d.DriverName = *in.DriverName
	}
	d.Reason = in.Reason
	return d, nil
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	tz     string
	log    *zap.Logger
	now    func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	tz string,
	log *zap.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		tz:     tz,
		log:    log,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	p := in.Principal
	today := todayIn(uc.now(), uc.tz)

	// --------------------------------------------------
	// 1️⃣ Registro atual (escopo do perfil)
	// --------------------------------------------------
	prior, err := loadVisible(ctx, uc.repo, p, in.ID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Proposta: registro atual + alterações
	// --------------------------------------------------
	draft, err := uc.draftFor(p, prior, in)
	if err != nil {
		return nil, err
	}
	iv, err := domain.CheckEdit(prior, draft, today)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Lock do dia de destino
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, lock.Key(p.CompanyID, draft.PlantID, draft.Date))
	if err != nil {
		return nil, fmt.Errorf("lock plant day: %w", err)
	}
	defer unlock()

	// --------------------------------------------------
	// 4️⃣ Revalidação + gravação
	// --------------------------------------------------
	var (
		updated     *models.Appointment
		rescheduled bool
	)
	err = uc.repo.InPlantDayTx(ctx, p.CompanyID, draft.PlantID, draft.Date, func(tx domain.Repository) error {
		current, err := tx.GetAppointment(ctx, p.CompanyID, in.ID)
		if err != nil {
			return err
		}

		plant, err := tx.GetPlant(ctx, p.CompanyID, draft.PlantID)
		if err != nil {
			return err
		}
		supplier, err := tx.GetSupplier(ctx, p.CompanyID, draft.SupplierID)
		if err != nil {
			return err
		}
		day, err := tx.LoadDay(ctx, p.CompanyID, plant, draft.Date, "")
		if err != nil {
			return err
		}

		ap, err := domain.Validate(domain.ValidationInput{
			CompanyID: p.CompanyID,
			Draft:     draft,
			Prior:     current,
			Plant:     plant,
			Supplier:  supplier,
			Day:       day,
			Today:     today,
		})
		if err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap, current.Status); err != nil {
			return err
		}
		updated = ap
		rescheduled = domain.ScheduleChanged(current, draft, iv)
		return nil
	})
	if err != nil {
		uc.log.Info("appointment update rejected",
			zap.Uint("company_id", p.CompanyID),
			zap.Uint("appointment_id", in.ID),
			zap.Error(err),
		)
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	action := "appointment_updated"
	if rescheduled {
		action = "appointment_rescheduled"
	}
	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    action,
		Entity:    entityAppointment,
		EntityID:  &updated.ID,
		Metadata: map[string]any{
			"from_date": prior.Date.Format("2006-01-02"),
			"from_time": prior.Time,
			"date":      updated.Date.Format("2006-01-02"),
			"time":      updated.Time,
			"time_end":  updated.TimeEnd,
			"reason":    draft.Reason,
		},
	})

	return updated, nil
}

// draftFor aplica as alterações e impede que perfis self-service troquem
// o próprio vínculo.
func (uc *UpdateAppointment) draftFor(
	p auth.Principal,
	prior *models.Appointment,
	in UpdateAppointmentInput,
) (domain.Draft, error) {

	if p.Role == auth.RoleSupplier && in.SupplierID != nil && *in.SupplierID != prior.SupplierID {
		return domain.Draft{}, httperr.NewBusiness(httperr.CodeForbidden, "Fornecedor não pode ser alterado.")
	}
	if p.Role == auth.RolePlant && in.PlantID != nil && (prior.PlantID == nil || *in.PlantID != *prior.PlantID) {
		return domain.Draft{}, httperr.NewBusiness(httperr.CodeForbidden, "Planta não pode ser alterada.")
	}

	draft, err := in.apply(domain.DraftFrom(prior))
	if err != nil {
		return domain.Draft{}, err
	}
	return draft.Normalize(), nil
}
