package appointment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/lock"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Principal auth.Principal

	PlantID    uint
	SupplierID uint

	Date    string
	Time    string
	TimeEnd string

	PurchaseOrder string
	TruckPlate    string
	DriverName    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	tz     string
	log    *zap.Logger
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	tz string,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
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

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	p := in.Principal
	today := todayIn(uc.now(), uc.tz)

	// --------------------------------------------------
	// 1️⃣ Proposta + vínculo do perfil
	// --------------------------------------------------
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	draft := domain.Draft{
		PlantID:       in.PlantID,
		SupplierID:    in.SupplierID,
		Date:          date,
		Time:          in.Time,
		TimeEnd:       in.TimeEnd,
		PurchaseOrder: in.PurchaseOrder,
		TruckPlate:    in.TruckPlate,
		DriverName:    in.DriverName,
	}
	if err := bindOwnership(p, &draft); err != nil {
		return nil, err
	}
	draft = draft.Normalize()

	// --------------------------------------------------
	// 2️⃣ Validação estrutural (sem lock)
	// --------------------------------------------------
	if _, err := domain.CheckDraft(draft, today); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Lock por planta/dia
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, lock.Key(p.CompanyID, draft.PlantID, draft.Date))
	if err != nil {
		return nil, fmt.Errorf("lock plant day: %w", err)
	}
	defer unlock()

	// --------------------------------------------------
	// 4️⃣ Validação completa + gravação na mesma transação
	// --------------------------------------------------
	var created *models.Appointment
	err = uc.repo.InPlantDayTx(ctx, p.CompanyID, draft.PlantID, draft.Date, func(tx domain.Repository) error {
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
			Plant:     plant,
			Supplier:  supplier,
			Day:       day,
			Today:     today,
		})
		if err != nil {
			return err
		}

		if err := tx.CreateAppointmentNumbered(ctx, ap); err != nil {
			return err
		}
		created = ap
		return nil
	})
	if err != nil {
		uc.log.Info("appointment rejected",
			zap.Uint("company_id", p.CompanyID),
			zap.Uint("plant_id", draft.PlantID),
			zap.String("date", draft.Date.Format("2006-01-02")),
			zap.Error(err),
		)
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "appointment_created",
		Entity:    entityAppointment,
		EntityID:  &created.ID,
		Metadata: map[string]any{
			"appointment_number": created.AppointmentNumber,
			"date":               created.Date.Format("2006-01-02"),
			"time":               created.Time,
			"time_end":           created.TimeEnd,
		},
	})

	return created, nil
}
