package macro

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ronesego-ui/captop/internal/domain"
)

// RateTable carries the tax parameters that do not come from the index feed.
type RateTable struct {
	VATRate       decimal.Decimal
	IncomeTaxRate decimal.Decimal
	Brackets      []domain.TaxBracket
}

// Builder assembles the macro snapshot for a period. Fresh values are served
// from the provider and written through to the cache; when the provider
// fails, the last cached value is used and the snapshot is marked stale.
// Only when both the provider and the cache come up empty does the period
// fail to close.
type Builder struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
	rates    RateTable
	baseDate time.Time
	logger   zerolog.Logger
}

// NewBuilder creates a Builder. baseDate anchors period 0; each game period
// spans one calendar month from there.
func NewBuilder(provider Provider, cache Cache, ttl time.Duration, rates RateTable, baseDate time.Time, logger zerolog.Logger) *Builder {
	return &Builder{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		rates:    rates,
		baseDate: baseDate,
		logger:   logger,
	}
}

// PeriodDate returns the calendar date on which the given period closes.
func (b *Builder) PeriodDate(period int) time.Time {
	return b.baseDate.AddDate(0, period, 0)
}

// Snapshot builds the macro snapshot for advancing into the given period.
func (b *Builder) Snapshot(ctx context.Context, period int) (domain.MacroSnapshot, error) {
	start := b.PeriodDate(period - 1)
	end := b.PeriodDate(period)

	ufStart, staleStart, err := b.index(ctx, SeriesUF, start, b.provider.UF)
	if err != nil {
		return domain.MacroSnapshot{}, err
	}
	ufEnd, staleEnd, err := b.index(ctx, SeriesUF, end, b.provider.UF)
	if err != nil {
		return domain.MacroSnapshot{}, err
	}
	utm, staleUTM, err := b.index(ctx, SeriesUTM, end, b.provider.UTM)
	if err != nil {
		return domain.MacroSnapshot{}, err
	}

	return domain.MacroSnapshot{
		UFStart:       ufStart,
		UFEnd:         ufEnd,
		UTM:           utm,
		VATRate:       b.rates.VATRate,
		IncomeTaxRate: b.rates.IncomeTaxRate,
		Brackets:      b.rates.Brackets,
		Stale:         staleStart || staleEnd || staleUTM,
	}, nil
}

type fetchFunc func(ctx context.Context, date time.Time) (decimal.Decimal, error)

// index resolves one series value: provider first, cache as fallback.
func (b *Builder) index(ctx context.Context, series string, date time.Time, fetch fetchFunc) (decimal.Decimal, bool, error) {
	key := cacheKey(series, date)

	value, fetchErr := fetch(ctx, date)
	if fetchErr == nil {
		if err := b.cache.Set(ctx, key, value.String(), b.ttl); err != nil {
			b.logger.Warn().Err(err).Str("series", series).Msg("failed to cache index value")
		}

		return value, false, nil
	}

	cached, cacheErr := b.cache.Get(ctx, key)
	if cacheErr != nil {
		return decimal.Zero, false, fmt.Errorf("%w: series %s at %s: %v",
			domain.ErrMacroUnavailable, series, date.Format("2006-01-02"), fetchErr)
	}

	value, err := decimal.NewFromString(cached)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%w: corrupt cached value %q for series %s",
			domain.ErrMacroUnavailable, cached, series)
	}

	staleErr := &domain.MacroDataStaleError{Series: series, Cause: fetchErr}
	b.logger.Warn().Err(staleErr).Str("series", series).Msg("index feed down, using cached value")

	return value, true, nil
}

func cacheKey(series string, date time.Time) string {
	return series + ":" + date.Format("2006-01-02")
}
