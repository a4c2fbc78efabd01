package schedule

import "github.com/BruksfildServices01/dock-scheduler/internal/models"

// PlantRef distingue agendamentos com planta de registros legados sem planta.
type PlantRef struct {
	id    uint
	valid bool
}

func SomePlant(id uint) PlantRef {
	return PlantRef{id: id, valid: true}
}

func LegacyPlant() PlantRef {
	return PlantRef{}
}

func PlantOf(ap *models.Appointment) PlantRef {
	if ap.PlantID == nil {
		return LegacyPlant()
	}
	return SomePlant(*ap.PlantID)
}

func (p PlantRef) ID() (uint, bool) {
	return p.id, p.valid
}

func (p PlantRef) IsLegacy() bool {
	return !p.valid
}

func (p PlantRef) Is(id uint) bool {
	return p.valid && p.id == id
}
