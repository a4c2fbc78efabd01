package schedule

type Source string

const (
	SourceSpecific  Source = "specific"
	SourceWeekly    Source = "weekly"
	SourceAutomatic Source = "automatic"
)

type Cause int

const (
	CauseNone Cause = iota
	CauseBlocked
	CauseOutsideHours
	CauseFull
)

const (
	ReasonBlocked      = "Horário bloqueado"
	ReasonOutsideHours = "Fora do horário"
	ReasonFull         = "Horário ocupado"
)

type SlotDecision struct {
	Slot      Clock
	Available bool
	Reason    string
	Source    Source
	Cause     Cause
}

// ResolveSlot aplica a precedência:
// data específica > semanal (respeitando a janela) > automático.
// Capacidade esgotada torna o slot indisponível em qualquer fonte.
func ResolveSlot(day *Day, slot Clock, atCapacity bool) SlotDecision {
	dec := SlotDecision{Slot: slot, Source: SourceAutomatic}

	if o, ok := day.Specific(slot); ok {
		dec.Source = SourceSpecific
		if !o.Available {
			return blocked(dec, o.Reason)
		}
		return withCapacity(dec, atCapacity)
	}

	if o, ok := day.Weekly(slot); ok {
		dec.Source = SourceWeekly
		if !o.Available {
			return blocked(dec, o.Reason)
		}
		if !day.Window.Contains(slot) {
			return outside(dec, day.Window)
		}
		return withCapacity(dec, atCapacity)
	}

	if !day.Window.Contains(slot) {
		return outside(dec, day.Window)
	}
	return withCapacity(dec, atCapacity)
}

func blocked(dec SlotDecision, reason string) SlotDecision {
	if reason == "" {
		reason = ReasonBlocked
	}
	dec.Reason = reason
	dec.Cause = CauseBlocked
	return dec
}

func outside(dec SlotDecision, w Window) SlotDecision {
	dec.Cause = CauseOutsideHours
	dec.Reason = ReasonOutsideHours
	if w.Reason != "" {
		dec.Reason = ReasonOutsideHours + " (" + w.Reason + ")"
	} else if w.Kind == Open {
		dec.Reason = ReasonOutsideHours + " (" + w.String() + ")"
	}
	return dec
}

func withCapacity(dec SlotDecision, atCapacity bool) SlotDecision {
	if atCapacity {
		dec.Cause = CauseFull
		dec.Reason = ReasonFull
		return dec
	}
	dec.Available = true
	return dec
}
