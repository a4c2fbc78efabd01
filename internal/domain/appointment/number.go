package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const numberLayout = "20060102"

// NumberPrefix é o prefixo AG-YYYYMMDD- da data.
func NumberPrefix(date time.Time) string {
	return "AG-" + date.Format(numberLayout) + "-"
}

// FormatNumber monta AG-YYYYMMDD-NNNN.
func FormatNumber(date time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", NumberPrefix(date), seq)
}

// ParseNumberSeq extrai NNNN de um número no formato de FormatNumber.
func ParseNumberSeq(number string) (int, bool) {
	idx := strings.LastIndex(number, "-")
	if !strings.HasPrefix(number, "AG-") || idx < 0 || idx == len(number)-1 {
		return 0, false
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}

// NextNumber devolve o próximo número dado os já emitidos na data.
func NextNumber(date time.Time, existing []string) string {
	last := 0
	for _, n := range existing {
		if seq, ok := ParseNumberSeq(n); ok && seq > last {
			last = seq
		}
	}
	return FormatNumber(date, last+1)
}
