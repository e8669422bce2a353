package macro

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Banco Central de Chile series identifiers.
const (
	SeriesUF  = "F073.UFF.PRE.Z.D"
	SeriesUTM = "F073.UTR.PRE.Z.M"
)

// Provider serves external macroeconomic index values. Implementations must
// be safe for concurrent use.
type Provider interface {
	// UF returns the Unidad de Fomento value at the given date.
	UF(ctx context.Context, date time.Time) (decimal.Decimal, error)
	// UTM returns the Unidad Tributaria Mensual value for the month
	// containing the given date.
	UTM(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

// Cache stores index values so a period can still close when the feed is
// down. Values are kept as plain decimal strings.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
