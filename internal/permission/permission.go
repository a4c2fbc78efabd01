package permission

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
)

type Level int

const (
	LevelNone Level = iota
	LevelViewer
	LevelEditor
)

func (l Level) String() string {
	switch l {
	case LevelViewer:
		return "viewer"
	case LevelEditor:
		return "editor"
	default:
		return "none"
	}
}

func ParseLevel(s string) (Level, bool) {
	switch s {
	case "none":
		return LevelNone, true
	case "viewer":
		return LevelViewer, true
	case "editor":
		return LevelEditor, true
	}
	return LevelNone, false
}

// Funções controladas por permissão.
const (
	FunctionViewAppointments    = "view_appointments"
	FunctionCreateAppointment   = "create_appointment"
	FunctionEditAppointment     = "edit_appointment"
	FunctionDeleteAppointment   = "delete_appointment"
	FunctionCheckIn             = "check_in"
	FunctionCheckOut            = "check_out"
	FunctionConfigurePlantHours = "configure_plant_hours"
	FunctionViewPlants          = "view_plants"
	FunctionEditPlant           = "edit_plant"
	FunctionViewSuppliers       = "view_suppliers"
	FunctionEditSupplier        = "edit_supplier"
)

// Policy é o comportamento quando não existe linha gravada para
// (empresa, perfil, função).
type Policy struct {
	DefaultLevel Level
}

func DefaultPolicy() Policy {
	return Policy{DefaultLevel: LevelEditor}
}

type Checker struct {
	db     *gorm.DB
	policy Policy
}

func NewChecker(db *gorm.DB, policy Policy) *Checker {
	return &Checker{db: db, policy: policy}
}

// Level devolve o nível efetivo do perfil para a função.
func (c *Checker) Level(ctx context.Context, p auth.Principal, functionID string) (Level, error) {
	if p.IsAdmin() {
		return LevelEditor, nil
	}

	var row models.Permission
	err := c.db.WithContext(ctx).
		Where("company_id = ? AND role = ? AND function_id = ?", p.CompanyID, string(p.Role), functionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.policy.DefaultLevel, nil
	}
	if err != nil {
		return LevelNone, fmt.Errorf("load permission: %w", err)
	}

	lvl, ok := ParseLevel(row.PermissionType)
	if !ok {
		return LevelNone, nil
	}
	return lvl, nil
}

func (c *Checker) Allowed(ctx context.Context, p auth.Principal, functionID string, minLevel Level) (bool, error) {
	lvl, err := c.Level(ctx, p, functionID)
	if err != nil {
		return false, err
	}
	return lvl >= minLevel, nil
}
