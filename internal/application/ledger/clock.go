package ledger

import "time"

// Clock fuente de tiempo del servicio (inyectable para hashes deterministas en tests).
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema en UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock reloj que siempre devuelve T.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
