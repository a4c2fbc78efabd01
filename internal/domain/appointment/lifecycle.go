package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/dock-scheduler/internal/auth"
	"github.com/BruksfildServices01/dock-scheduler/internal/httperr"
	"github.com/BruksfildServices01/dock-scheduler/internal/models"
	"github.com/BruksfildServices01/dock-scheduler/internal/timezone"
)

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
	ActionDelete   Action = "delete"
	ActionUpdate   Action = "update"
)

// ===============================
// Transitions
// ===============================

// Transition aplica action sobre ap, carimbando os horários.
// today é o dia corrente no fuso da operação; now é gravado como UTC.
func Transition(ap *models.Appointment, action Action, role auth.Role, today, now time.Time) error {
	current, err := ParseStatus(ap.Status)
	if err != nil {
		return err
	}

	switch action {
	case ActionCheckIn:
		if current != StatusScheduled && current != StatusRescheduled {
			return illegal(action, current)
		}
		if role.SelfService() && !timezone.Date(ap.Date).Equal(timezone.Date(today)) {
			return httperr.NewBusiness(
				httperr.CodeNotToday,
				"Check-in permitido apenas na data do agendamento.",
			).With("current_status", string(current)).With("date", ap.Date.Format("2006-01-02"))
		}
		stamp := now.UTC()
		ap.CheckInTime = &stamp
		ap.Status = string(StatusCheckedIn)
		return nil

	case ActionCheckOut:
		if current != StatusCheckedIn {
			return illegal(action, current)
		}
		stamp := now.UTC()
		ap.CheckOutTime = &stamp
		ap.Status = string(StatusCheckedOut)
		return nil

	case ActionDelete, ActionUpdate:
		if !current.Editable() {
			return illegal(action, current)
		}
		return nil
	}

	return fmt.Errorf("unknown appointment action %q", action)
}

func illegal(action Action, current Status) error {
	return httperr.NewBusiness(
		httperr.CodeIllegalTransition,
		fmt.Sprintf("Ação %s não permitida no status %s.", action, current),
	).With("current_status", string(current)).With("action", string(action))
}
