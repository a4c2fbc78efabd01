package auth

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSupplier Role = "supplier"
	RolePlant    Role = "plant"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleSupplier, RolePlant:
		return Role(s), true
	}
	return "", false
}

// SelfService indica os perfis que operam apenas sobre os próprios dados.
func (r Role) SelfService() bool {
	return r == RoleSupplier || r == RolePlant
}

// Principal é o usuário autenticado da requisição.
type Principal struct {
	UserID     uint
	CompanyID  uint
	Role       Role
	PlantID    *uint
	SupplierID *uint
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// OwnsSupplier diz se p pode agir sobre registros do fornecedor.
func (p Principal) OwnsSupplier(supplierID uint) bool {
	if p.Role != RoleSupplier {
		return true
	}
	return p.SupplierID != nil && *p.SupplierID == supplierID
}

// OwnsPlant diz se p pode agir sobre registros da planta.
func (p Principal) OwnsPlant(plantID *uint) bool {
	if p.Role != RolePlant {
		return true
	}
	return p.PlantID != nil && plantID != nil && *p.PlantID == *plantID
}
