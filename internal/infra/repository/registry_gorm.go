package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/registry"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type RegistryGormRepository struct {
	db *gorm.DB
}

func NewRegistryGormRepository(db *gorm.DB) *RegistryGormRepository {
	return &RegistryGormRepository{db: db}
}

func (r *RegistryGormRepository) InTx(
	ctx context.Context,
	fn func(tx registry.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RegistryGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Plant
// --------------------------------------------------

func (r *RegistryGormRepository) ListPlants(
	ctx context.Context,
	f registry.PlantFilter,
) ([]models.Plant, error) {

	q := r.db.WithContext(ctx).Where("company_id = ?", f.CompanyID)
	if f.OnlyID != nil {
		q = q.Where("id = ?", *f.OnlyID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	plants := []models.Plant{}
	if err := q.Order("name ASC").Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	return plants, nil
}

func (r *RegistryGormRepository) GetPlant(
	ctx context.Context,
	companyID uint,
	plantID uint,
) (*models.Plant, error) {
	return getPlant(ctx, r.db, companyID, plantID)
}

func (r *RegistryGormRepository) PlantNameTaken(
	ctx context.Context,
	companyID uint,
	name string,
	exceptID uint,
) (bool, error) {
	return r.taken(ctx, &models.Plant{}, "LOWER(name) = LOWER(?)", companyID, name, exceptID)
}

func (r *RegistryGormRepository) PlantCodeTaken(
	ctx context.Context,
	companyID uint,
	code string,
	exceptID uint,
) (bool, error) {
	return r.taken(ctx, &models.Plant{}, "code = ?", companyID, code, exceptID)
}

func (r *RegistryGormRepository) CreatePlant(ctx context.Context, plant *models.Plant) error {
	if err := r.db.WithContext(ctx).Create(plant).Error; err != nil {
		if isDuplicate(err) {
			return duplicate("name", "Já existe uma planta com este nome.")
		}
		return fmt.Errorf("create plant: %w", err)
	}
	return nil
}

func (r *RegistryGormRepository) SavePlant(ctx context.Context, plant *models.Plant) error {
	if err := r.db.WithContext(ctx).Omit("Company").Save(plant).Error; err != nil {
		if isDuplicate(err) {
			return duplicate("name", "Já existe uma planta com este nome.")
		}
		return fmt.Errorf("save plant %d: %w", plant.ID, err)
	}
	return nil
}

func (r *RegistryGormRepository) SetPlantUsersActive(
	ctx context.Context,
	companyID uint,
	plantID uint,
	active bool,
) (int64, error) {
	return r.setUsersActive(ctx, "plant_id = ?", companyID, plantID, active)
}

// --------------------------------------------------
// Supplier
// --------------------------------------------------

func (r *RegistryGormRepository) ListSuppliers(
	ctx context.Context,
	f registry.SupplierFilter,
) ([]models.Supplier, error) {

	q := r.db.WithContext(ctx).Where("company_id = ?", f.CompanyID)
	if f.OnlyID != nil {
		q = q.Where("id = ?", *f.OnlyID)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	suppliers := []models.Supplier{}
	if err := q.Order("description ASC").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *RegistryGormRepository) GetSupplier(
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

func (r *RegistryGormRepository) SupplierCNPJTaken(
	ctx context.Context,
	companyID uint,
	cnpj string,
	exceptID uint,
) (bool, error) {
	return r.taken(ctx, &models.Supplier{}, "cnpj = ?", companyID, cnpj, exceptID)
}

// CountOpenAppointments conta agendamentos ainda não encerrados do fornecedor.
func (r *RegistryGormRepository) CountOpenAppointments(
	ctx context.Context,
	companyID uint,
	supplierID uint,
) (int64, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("company_id = ? AND supplier_id = ?", companyID, supplierID).
		Where("status IN ?", []string{"scheduled", "rescheduled", "checked_in"}).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count supplier appointments: %w", err)
	}
	return n, nil
}

func (r *RegistryGormRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		if isDuplicate(err) {
			return duplicate("cnpj", "CNPJ já cadastrado nesta empresa.")
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func (r *RegistryGormRepository) SaveSupplier(ctx context.Context, supplier *models.Supplier) error {
	if err := r.db.WithContext(ctx).Omit("Company").Save(supplier).Error; err != nil {
		if isDuplicate(err) {
			return duplicate("cnpj", "CNPJ já cadastrado nesta empresa.")
		}
		return fmt.Errorf("save supplier %d: %w", supplier.ID, err)
	}
	return nil
}

func (r *RegistryGormRepository) SetSupplierUsersActive(
	ctx context.Context,
	companyID uint,
	supplierID uint,
	active bool,
) (int64, error) {
	return r.setUsersActive(ctx, "supplier_id = ?", companyID, supplierID, active)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *RegistryGormRepository) taken(
	ctx context.Context,
	model any,
	cond string,
	companyID uint,
	value string,
	exceptID uint,
) (bool, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("company_id = ?", companyID).
		Where(cond, value).
		Where("id <> ?", exceptID).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("check duplicate: %w", err)
	}
	return n > 0, nil
}

func (r *RegistryGormRepository) setUsersActive(
	ctx context.Context,
	cond string,
	companyID uint,
	id uint,
	active bool,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("company_id = ?", companyID).
		Where(cond, id).
		Update("is_active", active)
	if res.Error != nil {
		return 0, fmt.Errorf("update linked users: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func duplicate(field, message string) error {
	return httperr.NewBusiness(httperr.CodeDuplicate, message).With("field", field)
}

// Compile-time check
var _ registry.Repository = (*RegistryGormRepository)(nil)
