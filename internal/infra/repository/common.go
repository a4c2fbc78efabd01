package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

const (
	dialectPostgres = "postgres"

	// SQLSTATE unique_violation.
	uniqueViolation = "23505"
)

// --------------------------------------------------
// Datas
// --------------------------------------------------

// dateParam adapta datas para colunas DATE. No postgres enviamos o texto
// do dia para não depender do fuso da sessão; o sqlite compara o texto
// completo gravado pelo driver.
func dateParam(db *gorm.DB, t time.Time) any {
	d := timezone.Date(t)
	if db.Dialector.Name() == dialectPostgres {
		return d.Format("2006-01-02")
	}
	return d
}

// --------------------------------------------------
// Erros
// --------------------------------------------------

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NewBusiness(code, message)
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	// sqlite (testes) não traduz o erro.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --------------------------------------------------
// Advisory lock
// --------------------------------------------------

func advisoryKey(companyID, plantID uint, date time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d:%s", companyID, plantID, date.Format("2006-01-02"))
	return int64(h.Sum64())
}

// --------------------------------------------------
// Leituras compartilhadas
// --------------------------------------------------

func getPlant(ctx context.Context, db *gorm.DB, companyID, plantID uint) (*models.Plant, error) {
	var plant models.Plant
	if err := db.WithContext(ctx).
		Where("id = ? AND company_id = ?", plantID, companyID).
		First(&plant).Error; err != nil {
		return nil, notFound(err, httperr.CodePlantNotFound, "Planta não encontrada.")
	}
	return &plant, nil
}

func loadDay(
	ctx context.Context,
	db *gorm.DB,
	companyID uint,
	plant *models.Plant,
	date time.Time,
	dayType string,
) (*schedule.Day, error) {

	q := db.WithContext(ctx)
	day := dateParam(db, date)

	var hours []models.OperatingHours
	if err := q.
		Where("company_id = ? AND (plant_id = ? OR plant_id IS NULL)", companyID, plant.ID).
		Find(&hours).Error; err != nil {
		return nil, fmt.Errorf("load operating hours: %w", err)
	}

	var specific []models.ScheduleConfig
	if err := q.
		Where("company_id = ? AND plant_id = ? AND date = ?", companyID, plant.ID, day).
		Find(&specific).Error; err != nil {
		return nil, fmt.Errorf("load schedule configs: %w", err)
	}

	var weekly []models.DefaultSchedule
	if err := q.
		Where(
			"company_id = ? AND plant_id = ? AND (day_of_week = ? OR day_of_week IS NULL)",
			companyID, plant.ID, int(date.Weekday()),
		).
		Find(&weekly).Error; err != nil {
		return nil, fmt.Errorf("load default schedules: %w", err)
	}

	var apps []models.Appointment
	if err := q.
		Select("id", "time", "time_end").
		Where("company_id = ? AND plant_id = ? AND date = ?", companyID, plant.ID, day).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	return schedule.BuildDay(schedule.DayInput{
		Plant:          schedule.SomePlant(plant.ID),
		Date:           timezone.Date(date),
		MaxCapacity:    plant.MaxCapacity,
		OperatingHours: hours,
		Specific:       specific,
		Weekly:         weekly,
		Appointments:   apps,
		DayType:        dayType,
	})
}
