package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/registry"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type SupplierInput struct {
	CNPJ        *string `json:"cnpj"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type Suppliers struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewSuppliers(repo domain.Repository, audit *audit.Dispatcher, log *zap.Logger) *Suppliers {
	return &Suppliers{repo: repo, audit: audit, log: log}
}

// List: admin vê todos, planta vê os ativos e fornecedor apenas o próprio.
func (uc *Suppliers) List(ctx context.Context, p auth.Principal, includeInactive bool) ([]models.Supplier, error) {
	f := domain.SupplierFilter{CompanyID: p.CompanyID}

	switch p.Role {
	case auth.RoleAdmin:
		f.ActiveOnly = !includeInactive
	case auth.RoleSupplier:
		if p.SupplierID == nil {
			return []models.Supplier{}, nil
		}
		f.OnlyID = p.SupplierID
	default:
		f.ActiveOnly = true
	}

	return uc.repo.ListSuppliers(ctx, f)
}

func (uc *Suppliers) Create(ctx context.Context, p auth.Principal, in SupplierInput) (*models.Supplier, error) {
	cnpj, desc := trimmed(in.CNPJ), trimmed(in.Description)

	var absent []string
	if cnpj == nil || *cnpj == "" {
		absent = append(absent, "cnpj")
	}
	if desc == nil || *desc == "" {
		absent = append(absent, "description")
	}
	if len(absent) > 0 {
		return nil, missing(absent...)
	}

	supplier := models.Supplier{
		CompanyID:   p.CompanyID,
		CNPJ:        *cnpj,
		Description: *desc,
		IsActive:    true,
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}

	if err := checkCNPJ(ctx, uc.repo, &supplier); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateSupplier(ctx, &supplier); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "supplier_created",
		Entity:    entitySupplier,
		EntityID:  &supplier.ID,
		Metadata:  map[string]any{"cnpj": supplier.CNPJ, "description": supplier.Description},
	})

	return &supplier, nil
}

// Update aplica alterações parciais; mudança de is_active acompanha os
// usuários do fornecedor.
func (uc *Suppliers) Update(ctx context.Context, p auth.Principal, id uint, in SupplierInput) (*models.Supplier, error) {
	return uc.save(ctx, p, id, in, "supplier_updated")
}

// Deactivate recusa fornecedor com agendamentos em aberto.
func (uc *Suppliers) Deactivate(ctx context.Context, p auth.Principal, id uint) (*models.Supplier, error) {
	inactive := false
	return uc.save(ctx, p, id, SupplierInput{IsActive: &inactive}, "supplier_deactivated")
}

func (uc *Suppliers) save(
	ctx context.Context,
	p auth.Principal,
	id uint,
	in SupplierInput,
	action string,
) (*models.Supplier, error) {

	var (
		supplier     *models.Supplier
		statusChange bool
		usersChanged int64
	)

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// 1️⃣ Registro atual
		// --------------------------------------------------
		current, err := tx.GetSupplier(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 2️⃣ Campos
		// --------------------------------------------------
		if cnpj := trimmed(in.CNPJ); cnpj != nil {
			if *cnpj == "" {
				return missing("cnpj")
			}
			current.CNPJ = *cnpj
		}
		if desc := trimmed(in.Description); desc != nil {
			if *desc == "" {
				return missing("description")
			}
			current.Description = *desc
		}
		if in.IsActive != nil && *in.IsActive != current.IsActive {
			current.IsActive = *in.IsActive
			statusChange = true
		}

		// --------------------------------------------------
		// 3️⃣ Inativação exige agenda limpa
		// --------------------------------------------------
		if statusChange && !current.IsActive {
			open, err := tx.CountOpenAppointments(ctx, p.CompanyID, current.ID)
			if err != nil {
				return err
			}
			if open > 0 {
				return httperr.NewBusiness(httperr.CodeSupplierInUse,
					"Fornecedor possui agendamentos em aberto.").
					With("open_appointments", open)
			}
		}

		if err := checkCNPJ(ctx, tx, current); err != nil {
			return err
		}
		if err := tx.SaveSupplier(ctx, current); err != nil {
			return err
		}

		if statusChange {
			n, err := tx.SetSupplierUsersActive(ctx, p.CompanyID, current.ID, current.IsActive)
			if err != nil {
				return err
			}
			usersChanged = n
		}

		supplier = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChange {
		uc.log.Info("supplier status changed",
			zap.Uint("company_id", p.CompanyID),
			zap.Uint("supplier_id", supplier.ID),
			zap.Bool("is_active", supplier.IsActive),
			zap.Int64("users", usersChanged),
		)
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    action,
		Entity:    entitySupplier,
		EntityID:  &supplier.ID,
		Metadata: map[string]any{
			"cnpj":      supplier.CNPJ,
			"is_active": supplier.IsActive,
		},
	})

	return supplier, nil
}

func checkCNPJ(ctx context.Context, repo domain.Repository, s *models.Supplier) error {
	taken, err := repo.SupplierCNPJTaken(ctx, s.CompanyID, s.CNPJ, s.ID)
	if err != nil {
		return err
	}
	if taken {
		return duplicate("cnpj", "CNPJ já cadastrado nesta empresa.")
	}
	return nil
}
