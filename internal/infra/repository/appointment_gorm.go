package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

const maxNumberAttempts = 5

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Plant / Supplier
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPlant(
	ctx context.Context,
	companyID uint,
	plantID uint,
) (*models.Plant, error) {
	return getPlant(ctx, r.db, companyID, plantID)
}

func (r *AppointmentGormRepository) GetSupplier(
	ctx context.Context,
	companyID uint,
	supplierID uint,
) (*models.Supplier, error) {

	var supplier models.Supplier
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", supplierID, companyID).
		First(&supplier).Error; err != nil {
		return nil, notFound(err, httperr.CodeSupplierNotFound, "Fornecedor não encontrado.")
	}
	return &supplier, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	companyID uint,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound, "Agendamento não encontrado.")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Plant").
		Preload("Supplier").
		Where("company_id = ?", f.CompanyID).
		Where("date >= ? AND date < ?", dateParam(r.db, f.From), dateParam(r.db, f.To))

	if f.PlantID != nil {
		q = q.Where("plant_id = ?", *f.PlantID)
	}
	if f.SupplierID != nil {
		q = q.Where("supplier_id = ?", *f.SupplierID)
	}

	var apps []models.Appointment
	if err := q.Order("date ASC, time ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return apps, nil
}

// --------------------------------------------------
// Day snapshot
// --------------------------------------------------

func (r *AppointmentGormRepository) LoadDay(
	ctx context.Context,
	companyID uint,
	plant *models.Plant,
	date time.Time,
	dayType string,
) (*schedule.Day, error) {
	return loadDay(ctx, r.db, companyID, plant, date, dayType)
}

// --------------------------------------------------
// Transação por planta/dia
// --------------------------------------------------

func (r *AppointmentGormRepository) InPlantDayTx(
	ctx context.Context,
	companyID uint,
	plantID uint,
	date time.Time,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == dialectPostgres {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(?)",
				advisoryKey(companyID, plantID, date),
			).Error; err != nil {
				return fmt.Errorf("advisory lock: %w", err)
			}
		}

		var plant models.Plant
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND company_id = ?", plantID, companyID).
			First(&plant).Error; err != nil {
			return notFound(err, httperr.CodePlantNotFound, "Planta não encontrada.")
		}

		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// CreateAppointmentNumbered grava ap com o próximo AG-YYYYMMDD-NNNN da
// empresa, tentando de novo em colisão do índice único.
func (r *AppointmentGormRepository) CreateAppointmentNumbered(
	ctx context.Context,
	ap *models.Appointment,
) error {

	prefix := domain.NumberPrefix(ap.Date)

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		var last []string
		if err := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("company_id = ? AND appointment_number LIKE ?", ap.CompanyID, prefix+"%").
			Order("LENGTH(appointment_number) DESC, appointment_number DESC").
			Limit(1).
			Pluck("appointment_number", &last).Error; err != nil {
			return fmt.Errorf("read last appointment number: %w", err)
		}

		number := domain.NextNumber(ap.Date, last)
		ap.ID = 0
		ap.AppointmentNumber = &number

		// Savepoint: a colisão não invalida a transação externa.
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(ap).Error
		})
		if err == nil {
			return nil
		}
		if !isDuplicate(err) {
			return fmt.Errorf("create appointment: %w", err)
		}
	}

	ap.AppointmentNumber = nil
	return httperr.NewBusiness(
		httperr.CodeNumberAllocationFailed,
		"Não foi possível gerar o número do agendamento.",
	)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	fromStatus string,
) error {

	res := r.db.WithContext(ctx).
		Model(ap).
		Where("company_id = ? AND status = ?", ap.CompanyID, fromStatus).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(ap)
	if res.Error != nil {
		return fmt.Errorf("update appointment %d: %w", ap.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.staleAppointment(ctx, ap.CompanyID, ap.ID, "update")
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	companyID uint,
	id uint,
	fromStatus string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ? AND status = ?", id, companyID, fromStatus).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return fmt.Errorf("delete appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return r.staleAppointment(ctx, companyID, id, "delete")
	}
	return nil
}

// staleAppointment explica uma escrita condicional que não afetou linhas:
// o registro sumiu ou outra operação mudou o status antes.
func (r *AppointmentGormRepository) staleAppointment(
	ctx context.Context,
	companyID uint,
	id uint,
	action string,
) error {

	current, err := r.GetAppointment(ctx, companyID, id)
	if err != nil {
		return err
	}
	return httperr.NewBusiness(
		httperr.CodeIllegalTransition,
		fmt.Sprintf("Ação %s não permitida no status %s.", action, current.Status),
	).With("current_status", current.Status).With("action", action)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
