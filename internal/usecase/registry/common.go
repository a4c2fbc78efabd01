package registry

import (
	"strings"

	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
)

const (
	entityPlant    = "plant"
	entitySupplier = "supplier"
)

func invalid(message string) httperr.BusinessError {
	return httperr.NewBusiness(httperr.CodeInvalidInput, message)
}

func missing(fields ...string) error {
	return httperr.NewBusiness(httperr.CodeMissingFields, "Campos obrigatórios ausentes.").
		With("fields", fields)
}

func duplicate(field, message string) error {
	return httperr.NewBusiness(httperr.CodeDuplicate, message).With("field", field)
}

// trimmed devolve nil para ponteiro nil e o valor sem espaços caso contrário.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
