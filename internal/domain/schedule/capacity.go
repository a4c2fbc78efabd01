package schedule

// CountOccupancy conta os agendamentos que ocupam slot.
// exclude = 0 não exclui ninguém.
func CountOccupancy(occupants []Occupant, slot Clock, exclude uint) int {
	n := 0
	for _, o := range occupants {
		if exclude != 0 && o.ID == exclude {
			continue
		}
		if o.Occupies(slot) {
			n++
		}
	}
	return n
}

// FirstOverCapacity devolve a primeira hora tocada por [start, end) em que
// já existem maxCapacity ou mais ocupantes.
func FirstOverCapacity(occupants []Occupant, start, end Clock, maxCapacity int, exclude uint) (Clock, bool) {
	for _, slot := range HoursTouched(start, end) {
		if CountOccupancy(occupants, slot, exclude) >= maxCapacity {
			return slot, true
		}
	}
	return 0, false
}

func (d *Day) Occupancy(slot Clock, exclude uint) int {
	return CountOccupancy(d.occupants, slot, exclude)
}

func (d *Day) FirstOverCapacity(start, end Clock, exclude uint) (Clock, bool) {
	return FirstOverCapacity(d.occupants, start, end, d.Capacity, exclude)
}
