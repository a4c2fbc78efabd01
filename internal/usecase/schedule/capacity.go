package schedule

import (
	"context"

	"github.com/BruksfildServices01/dock-scheduler/internal/audit"
	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
)

type Capacity struct {
	repo  domain.ConfigRepository
	audit *audit.Dispatcher
}

func NewCapacity(repo domain.ConfigRepository, audit *audit.Dispatcher) *Capacity {
	return &Capacity{repo: repo, audit: audit}
}

func (uc *Capacity) Get(ctx context.Context, p auth.Principal, plantID uint) (int, error) {
	plant, err := plantFor(ctx, uc.repo, p, plantID)
	if err != nil {
		return 0, err
	}
	if plant.MaxCapacity <= 0 {
		return 1, nil
	}
	return plant.MaxCapacity, nil
}

// Set não reacomoda agendamentos existentes; vale para novas validações.
func (uc *Capacity) Set(ctx context.Context, p auth.Principal, plantID uint, maxCapacity int) error {
	if maxCapacity <= 0 {
		return invalid("max_capacity deve ser um inteiro positivo.").With("max_capacity", maxCapacity)
	}

	plant, err := plantFor(ctx, uc.repo, p, plantID)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdateMaxCapacity(ctx, p.CompanyID, plantID, maxCapacity); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		CompanyID: p.CompanyID,
		UserID:    &p.UserID,
		Action:    "max_capacity_updated",
		Entity:    "plant",
		EntityID:  &plantID,
		Metadata: map[string]int{
			"from": plant.MaxCapacity,
			"to":   maxCapacity,
		},
	})
	return nil
}
