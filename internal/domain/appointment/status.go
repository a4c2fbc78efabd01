package appointment

import "fmt"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCheckedIn   Status = "checked_in"
	StatusCheckedOut  Status = "checked_out"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusRescheduled, StatusCheckedIn, StatusCheckedOut:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Editable indica se o agendamento ainda aceita alterações e exclusão.
func (s Status) Editable() bool {
	switch s {
	case StatusScheduled, StatusRescheduled:
		return true
	case StatusCheckedIn, StatusCheckedOut:
		return false
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}
