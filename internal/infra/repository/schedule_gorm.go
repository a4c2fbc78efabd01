package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Plant
// --------------------------------------------------

func (r *ScheduleGormRepository) GetPlant(
	ctx context.Context,
	companyID uint,
	plantID uint,
) (*models.Plant, error) {
	return getPlant(ctx, r.db, companyID, plantID)
}

func (r *ScheduleGormRepository) UpdateMaxCapacity(
	ctx context.Context,
	companyID uint,
	plantID uint,
	maxCapacity int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Plant{}).
		Where("id = ? AND company_id = ?", plantID, companyID).
		Update("max_capacity", maxCapacity)
	if res.Error != nil {
		return fmt.Errorf("update max capacity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NewBusiness(httperr.CodePlantNotFound, "Planta não encontrada.")
	}
	return nil
}

func (r *ScheduleGormRepository) LoadDay(
	ctx context.Context,
	companyID uint,
	plant *models.Plant,
	date time.Time,
	dayType string,
) (*schedule.Day, error) {
	return loadDay(ctx, r.db, companyID, plant, date, dayType)
}

// --------------------------------------------------
// Operating hours
// --------------------------------------------------

func (r *ScheduleGormRepository) ListOperatingHours(
	ctx context.Context,
	companyID uint,
	plantID uint,
) ([]models.OperatingHours, error) {

	var rows []models.OperatingHours
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND (plant_id = ? OR plant_id IS NULL)", companyID, plantID).
		Order("schedule_type ASC, day_of_week ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list operating hours: %w", err)
	}
	return rows, nil
}

// SaveOperatingHours faz upsert por (planta, tipo, dia). Linhas inativas
// continuam gravadas: é assim que um fim de semana fica desativado.
func (r *ScheduleGormRepository) SaveOperatingHours(
	ctx context.Context,
	companyID uint,
	plantID uint,
	rows []models.OperatingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			in := rows[i]

			q := tx.Where(
				"company_id = ? AND plant_id = ? AND schedule_type = ?",
				companyID, plantID, in.ScheduleType,
			)
			if in.DayOfWeek == nil {
				q = q.Where("day_of_week IS NULL")
			} else {
				q = q.Where("day_of_week = ?", *in.DayOfWeek)
			}

			var existing models.OperatingHours
			err := q.Limit(1).Find(&existing).Error
			if err != nil {
				return fmt.Errorf("find operating hours: %w", err)
			}

			if existing.ID != 0 {
				if err := tx.Model(&existing).Updates(map[string]any{
					"operating_start": in.OperatingStart,
					"operating_end":   in.OperatingEnd,
					"is_active":       in.IsActive,
				}).Error; err != nil {
					return fmt.Errorf("update operating hours: %w", err)
				}
				continue
			}

			pid := plantID
			row := models.OperatingHours{
				CompanyID:      companyID,
				PlantID:        &pid,
				ScheduleType:   in.ScheduleType,
				DayOfWeek:      in.DayOfWeek,
				OperatingStart: in.OperatingStart,
				OperatingEnd:   in.OperatingEnd,
				IsActive:       in.IsActive,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create operating hours: %w", err)
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Schedule config (por data)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListScheduleConfigs(
	ctx context.Context,
	companyID uint,
	plantID uint,
	from time.Time,
	to time.Time,
) ([]models.ScheduleConfig, error) {

	var rows []models.ScheduleConfig
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND plant_id = ?", companyID, plantID).
		Where("date >= ? AND date < ?", dateParam(r.db, from), dateParam(r.db, to)).
		Order("date ASC, time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list schedule configs: %w", err)
	}
	return rows, nil
}

func (r *ScheduleGormRepository) UpsertScheduleConfig(
	ctx context.Context,
	sc *models.ScheduleConfig,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ScheduleConfig
		if err := tx.
			Where(
				"company_id = ? AND plant_id = ? AND date = ? AND time = ?",
				sc.CompanyID, sc.PlantID, dateParam(tx, sc.Date), sc.Time,
			).
			Limit(1).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("find schedule config: %w", err)
		}

		if existing.ID == 0 {
			if err := tx.Create(sc).Error; err != nil {
				return fmt.Errorf("create schedule config: %w", err)
			}
			return nil
		}

		if err := tx.Model(&existing).Updates(map[string]any{
			"is_available": sc.IsAvailable,
			"reason":       sc.Reason,
		}).Error; err != nil {
			return fmt.Errorf("update schedule config: %w", err)
		}
		sc.ID = existing.ID
		sc.CreatedAt = existing.CreatedAt
		return nil
	})
}

func (r *ScheduleGormRepository) DeleteScheduleConfig(
	ctx context.Context,
	companyID uint,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.ScheduleConfig{})
	if res.Error != nil {
		return fmt.Errorf("delete schedule config: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NewBusiness(httperr.CodeScheduleConfigNotFound, "Configuração não encontrada.")
	}
	return nil
}

// --------------------------------------------------
// Default schedule (semanal)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListDefaultSchedules(
	ctx context.Context,
	companyID uint,
	plantID uint,
) ([]models.DefaultSchedule, error) {

	var rows []models.DefaultSchedule
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND plant_id = ?", companyID, plantID).
		Order("day_of_week ASC, time ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list default schedules: %w", err)
	}
	return rows, nil
}

func (r *ScheduleGormRepository) UpsertDefaultSchedule(
	ctx context.Context,
	ds *models.DefaultSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where(
			"company_id = ? AND plant_id = ? AND time = ?",
			ds.CompanyID, ds.PlantID, ds.Time,
		)
		if ds.DayOfWeek == nil {
			q = q.Where("day_of_week IS NULL")
		} else {
			q = q.Where("day_of_week = ?", *ds.DayOfWeek)
		}

		var existing models.DefaultSchedule
		if err := q.Limit(1).Find(&existing).Error; err != nil {
			return fmt.Errorf("find default schedule: %w", err)
		}

		if existing.ID == 0 {
			if err := tx.Create(ds).Error; err != nil {
				return fmt.Errorf("create default schedule: %w", err)
			}
			return nil
		}

		if err := tx.Model(&existing).Updates(map[string]any{
			"is_available": ds.IsAvailable,
			"reason":       ds.Reason,
		}).Error; err != nil {
			return fmt.Errorf("update default schedule: %w", err)
		}
		ds.ID = existing.ID
		ds.CreatedAt = existing.CreatedAt
		return nil
	})
}

func (r *ScheduleGormRepository) DeleteDefaultSchedule(
	ctx context.Context,
	companyID uint,
	id uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", id, companyID).
		Delete(&models.DefaultSchedule{})
	if res.Error != nil {
		return fmt.Errorf("delete default schedule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NewBusiness(httperr.CodeScheduleConfigNotFound, "Configuração não encontrada.")
	}
	return nil
}

// Compile-time check
var _ schedule.ConfigRepository = (*ScheduleGormRepository)(nil)
