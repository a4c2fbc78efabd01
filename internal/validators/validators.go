package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/dock-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

// Placa antiga (ABC1234) ou Mercosul (ABC1D23), já em maiúsculas.
var plateRe = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

// Register adiciona as tags usadas nos requests ao validator do gin:
// hhmm, isodate e plate.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", isClock); err != nil {
		return err
	}
	if err := v.RegisterValidation("isodate", isDate); err != nil {
		return err
	}
	return v.RegisterValidation("plate", isPlate)
}

func isClock(fl validator.FieldLevel) bool {
	_, err := schedule.ParseClock(fl.Field().String())
	return err == nil
}

func isDate(fl validator.FieldLevel) bool {
	_, err := timezone.ParseDate(fl.Field().String())
	return err == nil
}

func isPlate(fl validator.FieldLevel) bool {
	return IsPlate(fl.Field().String())
}

// IsPlate aceita placas com ou sem hífen, em qualquer caixa.
func IsPlate(s string) bool {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	return plateRe.MatchString(s)
}
