package schedule

type SlotView struct {
	Time           string  `json:"time"`
	IsAvailable    bool    `json:"is_available"`
	Reason         *string `json:"reason"`
	HasAppointment bool    `json:"has_appointment"`
	Occupancy      int     `json:"occupancy"`
	Capacity       int     `json:"capacity"`
	Source         Source  `json:"source"`
}

// ProjectDay monta a grade 00:00..23:00 do dia. Sem cache: o dia
// tem no máximo 24 linhas.
func ProjectDay(day *Day) []SlotView {
	slots := DaySlots()
	out := make([]SlotView, 0, len(slots))

	for _, slot := range slots {
		occ := day.Occupancy(slot, 0)
		dec := ResolveSlot(day, slot, occ >= day.Capacity)

		view := SlotView{
			Time:           slot.String(),
			IsAvailable:    dec.Available,
			HasAppointment: occ > 0,
			Occupancy:      occ,
			Capacity:       day.Capacity,
			Source:         dec.Source,
		}
		if dec.Reason != "" {
			reason := dec.Reason
			view.Reason = &reason
		}
		out = append(out, view)
	}
	return out
}
