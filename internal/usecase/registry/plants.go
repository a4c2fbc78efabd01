package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/registry"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// PlantInput traz apenas os campos enviados; nil mantém o valor atual.
type PlantInput struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	IsActive    *bool   `json:"is_active"`
	MaxCapacity *int    `json:"max_capacity"`
}

// ======================================================
// USE CASE
// ======================================================

type Plants struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewPlants(repo domain.Repository, audit *audit.Dispatcher, log *zap.Logger) *Plants {
	return &Plants{repo: repo, audit: audit, log: log}
}

// List devolve as plantas visíveis ao perfil: admin vê todas, usuário
// de planta apenas a sua e fornecedor apenas as ativas.
func (uc *Plants) List(ctx context.Context, p auth.Principal, includeInactive bool) ([]models.Plant, error) {
	f := domain.PlantFilter{CompanyID: p.CompanyID}

	switch p.Role {
	case auth.RoleAdmin:
		f.ActiveOnly = !includeInactive
	case auth.RolePlant:
		if p.PlantID == nil {
			return []models.Plant{}, nil
		}
		f.OnlyID = p.PlantID
	default:
		f.ActiveOnly = true
	}

	return uc.repo.ListPlants(ctx, f)
}

func (uc *Plants) Create(ctx context.Context, p auth.Principal, in PlantInput) (*models.Plant, error) {

	// --------------------------------------------------
	// 1️⃣ Campos
	// --------------------------------------------------
	name := trimmed(in.Name)
	if name == nil || *name == "" {
		return nil, missing("name")
	}

	plant := models.Plant{
		CompanyID:   p.CompanyID,
		Name:        *name,
		IsActive:    true,
		MaxCapacity: 1,
	}
	if code := trimmed(in.Code); code != nil {
		plant.Code = *code
	}
	if in.IsActive != nil {
		plant.IsActive = *in.IsActive
	}
	if in.MaxCapacity != nil {
		if *in.MaxCapacity <= 0 {
			return nil, invalid("max_capacity deve ser um inteiro positivo.").With("max_capacity", *in.MaxCapacity)
		}
		plant.MaxCapacity = *in.MaxCapacity
	}

	// --------------------------------------------------
	// 2️⃣ Unicidade na empresa
	// --------------------------------------------------
	if err := checkPlant(ctx, uc.repo, &plant); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Gravação + auditoria
	// --------------------------------------------------
	if err := uc.repo.CreatePlant(ctx, &plant); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "plant_created",
		Entity:    entityPlant,
		EntityID:  &plant.ID,
		Metadata:  map[string]any{"name": plant.Name, "code": plant.Code},
	})

	return &plant, nil
}

// Update aplica alterações parciais. Mudança de is_active acompanha os
// usuários vinculados à planta.
func (uc *Plants) Update(ctx context.Context, p auth.Principal, id uint, in PlantInput) (*models.Plant, error) {
	var (
		plant        *models.Plant
		statusChange bool
		usersChanged int64
	)

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		current, err := tx.GetPlant(ctx, p.CompanyID, id)
		if err != nil {
			return err
		}

		if name := trimmed(in.Name); name != nil {
			if *name == "" {
				return missing("name")
			}
			current.Name = *name
		}
		if code := trimmed(in.Code); code != nil {
			current.Code = *code
		}
		if in.MaxCapacity != nil {
			if *in.MaxCapacity <= 0 {
				return invalid("max_capacity deve ser um inteiro positivo.").With("max_capacity", *in.MaxCapacity)
			}
			current.MaxCapacity = *in.MaxCapacity
		}
		if in.IsActive != nil && *in.IsActive != current.IsActive {
			current.IsActive = *in.IsActive
			statusChange = true
		}

		if err := checkPlant(ctx, tx, current); err != nil {
			return err
		}
		if err := tx.SavePlant(ctx, current); err != nil {
			return err
		}

		if statusChange {
			n, err := tx.SetPlantUsersActive(ctx, p.CompanyID, current.ID, current.IsActive)
			if err != nil {
				return err
			}
			usersChanged = n
		}

		plant = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChange {
		uc.log.Info("plant status changed",
			zap.Uint("company_id", p.CompanyID),
			zap.Uint("plant_id", plant.ID),
			zap.Bool("is_active", plant.IsActive),
			zap.Int64("users", usersChanged),
		)
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "plant_updated",
		Entity:    entityPlant,
		EntityID:  &plant.ID,
		Metadata: map[string]any{
			"name":      plant.Name,
			"code":      plant.Code,
			"is_active": plant.IsActive,
		},
	})

	return plant, nil
}

// Deactivate é a exclusão lógica: a planta some das reservas, mas os
// agendamentos continuam apontando para ela.
func (uc *Plants) Deactivate(ctx context.Context, p auth.Principal, id uint) (*models.Plant, error) {
	inactive := false
	return uc.Update(ctx, p, id, PlantInput{IsActive: &inactive})
}

// checkPlant compara nome sem caixa e código exato dentro da empresa.
func checkPlant(ctx context.Context, repo domain.Repository, plant *models.Plant) error {
	taken, err := repo.PlantNameTaken(ctx, plant.CompanyID, plant.Name, plant.ID)
	if err != nil {
		return err
	}
	if taken {
		return duplicate("name", "Já existe uma planta com este nome.")
	}

	if plant.Code == "" {
		return nil
	}
	taken, err = repo.PlantCodeTaken(ctx, plant.CompanyID, plant.Code, plant.ID)
	if err != nil {
		return err
	}
	if taken {
		return duplicate("code", "Já existe uma planta com este código.")
	}
	return nil
}
