package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock é um horário do dia em minutos desde a meia-noite.
type Clock int

const (
	Hour     Clock = 60
	Midnight Clock = 0
	EndOfDay Clock = 24 * Hour
)

func At(h, m int) Clock {
	return Clock(h*60 + m)
}

// ParseClock aceita "HH:MM" e "HH:MM:SS" (segundos ignorados).
// "24:00" é aceito como fim do dia.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid clock %q", s)
		}
	}

	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return At(h, m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Hour() int {
	return int(c) / 60
}

// Floor trunca para o início da hora.
func (c Clock) Floor() Clock {
	return c - c%Hour
}

// Ceil arredonda para a próxima hora cheia.
func (c Clock) Ceil() Clock {
	if c%Hour == 0 {
		return c
	}
	return c.Floor() + Hour
}

// SlotsInRange devolve {start, start+1h, ...} estritamente menores que end.
func SlotsInRange(start, end Clock) []Clock {
	if end <= start {
		return nil
	}
	slots := make([]Clock, 0, int((end-start+Hour-1)/Hour))
	for s := start; s < end; s += Hour {
		slots = append(slots, s)
	}
	return slots
}

// HoursTouched devolve as horas cheias que [start, end) toca:
// 08:30-09:30 ocupa 08:00 e 09:00.
func HoursTouched(start, end Clock) []Clock {
	if end <= start {
		return nil
	}
	return SlotsInRange(start.Floor(), end.Ceil())
}

// DaySlots são os 24 slots 00:00..23:00.
func DaySlots() []Clock {
	return SlotsInRange(Midnight, EndOfDay)
}
