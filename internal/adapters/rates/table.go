package rates

import (
	"context"
	"fmt"
	"sync"

	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Table is an in-memory offline rate table used when no database is
// configured. It implements both the RateSource and RateRepository ports.
type Table struct {
	mu    sync.RWMutex
	rates map[string]domain.ExchangeRate
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{rates: make(map[string]domain.ExchangeRate)}
}

func pairKey(fromCode, toCode string) string {
	return fromCode + "/" + toCode
}

// Rate returns the conversion ratio for the pair, or
// apperrors.ErrUnsupportedConversion when the table lacks it.
func (t *Table) Rate(_ context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.rates[pairKey(fromCode, toCode)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", apperrors.ErrUnsupportedConversion, fromCode, toCode)
	}
	return entry.Rate, nil
}

// SaveRate upserts a rate entry.
func (t *Table) SaveRate(_ context.Context, rate domain.ExchangeRate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rates[pairKey(rate.FromCurrencyCode, rate.ToCurrencyCode)] = rate
	return nil
}

// FindRate returns the stored entry for the pair, or apperrors.ErrNotFound.
func (t *Table) FindRate(_ context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.rates[pairKey(fromCode, toCode)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}
