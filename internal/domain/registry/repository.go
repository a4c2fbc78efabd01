package registry

import (
	"context"

	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// PlantFilter restringe a listagem; OnlyID limita à planta do usuário.
type PlantFilter struct {
	CompanyID  uint
	OnlyID     *uint
	ActiveOnly bool
}

type SupplierFilter struct {
	CompanyID  uint
	OnlyID     *uint
	ActiveOnly bool
}

// Repository cuida do cadastro de plantas e fornecedores.
// Todos os métodos são escopados por empresa.
type Repository interface {
	// -------- Plant --------
	ListPlants(ctx context.Context, f PlantFilter) ([]models.Plant, error)
	GetPlant(ctx context.Context, companyID, plantID uint) (*models.Plant, error)
	PlantNameTaken(ctx context.Context, companyID uint, name string, exceptID uint) (bool, error)
	PlantCodeTaken(ctx context.Context, companyID uint, code string, exceptID uint) (bool, error)
	CreatePlant(ctx context.Context, plant *models.Plant) error
	SavePlant(ctx context.Context, plant *models.Plant) error

	// -------- Supplier --------
	ListSuppliers(ctx context.Context, f SupplierFilter) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, companyID, supplierID uint) (*models.Supplier, error)
	SupplierCNPJTaken(ctx context.Context, companyID uint, cnpj string, exceptID uint) (bool, error)
	CountOpenAppointments(ctx context.Context, companyID, supplierID uint) (int64, error)
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	SaveSupplier(ctx context.Context, supplier *models.Supplier) error

	// SetPlantUsersActive e SetSupplierUsersActive acompanham o status
	// do cadastro nos usuários vinculados.
	SetPlantUsersActive(ctx context.Context, companyID, plantID uint, active bool) (int64, error)
	SetSupplierUsersActive(ctx context.Context, companyID, supplierID uint, active bool) (int64, error)

	// InTx executa fn numa transação; fn usa apenas o repositório recebido.
	InTx(ctx context.Context, fn func(tx Repository) error) error
}
