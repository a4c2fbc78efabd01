package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// ConfigRepository persiste as regras de agenda de uma planta.
// Todos os métodos filtram por companyID.
type ConfigRepository interface {
	// -------- Plant --------
	GetPlant(ctx context.Context, companyID, plantID uint) (*models.Plant, error)
	UpdateMaxCapacity(ctx context.Context, companyID, plantID uint, maxCapacity int) error

	// -------- Day snapshot --------
	LoadDay(ctx context.Context, companyID uint, plant *models.Plant, date time.Time, dayType string) (*Day, error)

	// -------- Operating hours --------
	ListOperatingHours(ctx context.Context, companyID, plantID uint) ([]models.OperatingHours, error)
	SaveOperatingHours(ctx context.Context, companyID, plantID uint, rows []models.OperatingHours) error

	// -------- Overrides --------
	ListScheduleConfigs(ctx context.Context, companyID, plantID uint, from, to time.Time) ([]models.ScheduleConfig, error)
	UpsertScheduleConfig(ctx context.Context, sc *models.ScheduleConfig) error
	DeleteScheduleConfig(ctx context.Context, companyID, id uint) error

	ListDefaultSchedules(ctx context.Context, companyID, plantID uint) ([]models.DefaultSchedule, error)
	UpsertDefaultSchedule(ctx context.Context, ds *models.DefaultSchedule) error
	DeleteDefaultSchedule(ctx context.Context, companyID, id uint) error
}
