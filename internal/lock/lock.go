package lock

import (
	"context"
	"fmt"
	"time"
)

// Unlock libera um lock obtido. Chamadas repetidas são ignoradas.
type Unlock func()

// Locker serializa seções críticas por chave.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Key identifica o dia de uma planta dentro da empresa.
func Key(companyID, plantID uint, date time.Time) string {
	return fmt.Sprintf("dock:lock:%d:%d:%s", companyID, plantID, date.Format("2006-01-02"))
}
