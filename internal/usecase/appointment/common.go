package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/dock-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

const entityAppointment = "appointment"

// todayIn é o dia de calendário de now no fuso da operação.
func todayIn(now time.Time, tz string) time.Time {
	return timezone.Date(now.In(timezone.Location(tz)))
}

// parseDate aceita vazio (data ausente vira zero e cai em MISSING_FIELDS).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := timezone.ParseDate(s)
	if err != nil {
		return time.Time{}, httperr.NewBusiness(httperr.CodeInvalidInput, "Data inválida, use YYYY-MM-DD.").
			With("date", s)
	}
	return d, nil
}

// visibleTo esconde registros de outro fornecedor/planta dos perfis self-service.
func visibleTo(p auth.Principal, ap *models.Appointment) bool {
	return p.OwnsSupplier(ap.SupplierID) && p.OwnsPlant(ap.PlantID)
}

func loadVisible(
	ctx context.Context,
	repo domain.Repository,
	p auth.Principal,
	id uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, p.CompanyID, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(p, ap) {
		return nil, httperr.NewBusiness(httperr.CodeAppointmentNotFound, "Agendamento não encontrado.")
	}
	return ap, nil
}

// bindOwnership fixa fornecedor/planta do perfil self-service na proposta.
func bindOwnership(p auth.Principal, d *domain.Draft) error {
	switch p.Role {
	case auth.RoleSupplier:
		if p.SupplierID == nil {
			return httperr.NewBusiness(httperr.CodeForbidden, "Usuário sem fornecedor vinculado.")
		}
		if d.SupplierID != 0 && d.SupplierID != *p.SupplierID {
			return httperr.NewBusiness(httperr.CodeForbidden, "Fornecedor diferente do usuário.")
		}
		d.SupplierID = *p.SupplierID

	case auth.RolePlant:
		if p.PlantID == nil {
			return httperr.NewBusiness(httperr.CodeForbidden, "Usuário sem planta vinculada.")
		}
		if d.PlantID != 0 && d.PlantID != *p.PlantID {
			return httperr.NewBusiness(httperr.CodeForbidden, "Planta diferente do usuário.")
		}
		d.PlantID = *p.PlantID
	}
	return nil
}
