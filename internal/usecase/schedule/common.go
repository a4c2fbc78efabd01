package schedule

import (
	"context"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

// plantFor carrega a planta no escopo do perfil.
// Usuário de outra planta recebe PLANT_NOT_FOUND.
func plantFor(
	ctx context.Context,
	repo domain.ConfigRepository,
	p auth.Principal,
	plantID uint,
) (*models.Plant, error) {

	if !p.OwnsPlant(&plantID) {
		return nil, httperr.NewBusiness(httperr.CodePlantNotFound, "Planta não encontrada.")
	}
	return repo.GetPlant(ctx, p.CompanyID, plantID)
}

func invalid(message string) httperr.BusinessError {
	return httperr.NewBusiness(httperr.CodeInvalidInput, message)
}
