package httperr

import "errors"

// Códigos estáveis devolvidos ao cliente.
const (
	CodePastDate                 = "PAST_DATE"
	CodeBadInterval              = "BAD_INTERVAL"
	CodeMissingFields            = "MISSING_FIELDS"
	CodeOutsideOperatingHours    = "OUTSIDE_OPERATING_HOURS"
	CodeBlockedSlot              = "BLOCKED_SLOT"
	CodeCapacityExceeded         = "CAPACITY_EXCEEDED"
	CodeIllegalTransition        = "ILLEGAL_TRANSITION"
	CodeNotToday                 = "NOT_TODAY"
	CodeRescheduleReasonRequired = "RESCHEDULE_REASON_REQUIRED"
	CodePlantNotFound            = "PLANT_NOT_FOUND"
	CodePlantInactive            = "PLANT_INACTIVE"
	CodeSupplierNotFound         = "SUPPLIER_NOT_FOUND"
	CodeSupplierInactive         = "SUPPLIER_INACTIVE"
	CodeAppointmentNotFound      = "APPOINTMENT_NOT_FOUND"
	CodeScheduleConfigNotFound   = "SCHEDULE_CONFIG_NOT_FOUND"
	CodeForbidden                = "FORBIDDEN"
	CodeNumberAllocationFailed   = "NUMBER_ALLOCATION_FAILED"
	CodeInvalidInput             = "INVALID_INPUT"
	CodeDuplicate                = "DUPLICATE"
	CodeSupplierInUse            = "SUPPLIER_HAS_ACTIVE_APPOINTMENTS"
)

type BusinessError struct {
	Code    string
	Message string
	Slot    string
	Details map[string]any
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func NewBusiness(code, message string) BusinessError {
	return BusinessError{Code: code, Message: message}
}

func (e BusinessError) AtSlot(slot string) BusinessError {
	e.Slot = slot
	return e
}

func (e BusinessError) With(key string, value any) BusinessError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
