package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type ListFilter struct {
	CompanyID uint

	// Intervalo de datas [From, To).
	From time.Time
	To   time.Time

	PlantID    *uint
	SupplierID *uint
}

// Repository é escopado por empresa em todos os métodos.
// Registros de outra empresa são tratados como inexistentes.
type Repository interface {
	// -------- Plant / Supplier --------
	GetPlant(ctx context.Context, companyID, plantID uint) (*models.Plant, error)
	GetSupplier(ctx context.Context, companyID, supplierID uint) (*models.Supplier, error)

	// -------- Appointment (read) --------
	GetAppointment(ctx context.Context, companyID, id uint) (*models.Appointment, error)
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)

	// -------- Day snapshot --------
	LoadDay(ctx context.Context, companyID uint, plant *models.Plant, date time.Time, dayType string) (*schedule.Day, error)

	// InPlantDayTx executa fn numa transação serializada por
	// (empresa, planta, data). fn deve usar apenas o repositório recebido.
	InPlantDayTx(ctx context.Context, companyID, plantID uint, date time.Time, fn func(tx Repository) error) error

	// -------- Appointment (write) --------
	CreateAppointmentNumbered(ctx context.Context, ap *models.Appointment) error

	// UpdateAppointment e DeleteAppointment só gravam se o status atual
	// ainda for fromStatus; caso contrário devolvem ILLEGAL_TRANSITION.
	UpdateAppointment(ctx context.Context, ap *models.Appointment, fromStatus string) error
	DeleteAppointment(ctx context.Context, companyID, id uint, fromStatus string) error
}
