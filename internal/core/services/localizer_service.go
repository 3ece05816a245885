package services

import (
	"context"

	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// PriceLocalizer turns a source price/currency into a market's report
// currency and converted amount.
type PriceLocalizer struct {
	catalog   portssvc.MarketCatalogSvc
	converter portssvc.CurrencyConverterSvc
}

// NewPriceLocalizer creates a new PriceLocalizer.
func NewPriceLocalizer(catalog portssvc.MarketCatalogSvc, converter portssvc.CurrencyConverterSvc) *PriceLocalizer {
	return &PriceLocalizer{
		catalog:   catalog,
		converter: converter,
	}
}

// Localize looks up the storefront's report currency for countryCode (falling
// back to sourceCurrency when the market is unknown) and converts amount into
// it. Matching currencies return the amount unchanged without touching the
// converter, avoiding an unnecessary rate-service round trip.
func (s *PriceLocalizer) Localize(ctx context.Context, countryCode string, amount decimal.Decimal, sourceCurrency string) (string, decimal.Decimal, error) {
	target, ok := s.catalog.ReportCurrency(countryCode)
	if !ok {
		target = sourceCurrency
	}

	if sourceCurrency == target {
		return target, amount, nil
	}

	converted, err := s.converter.Convert(ctx, amount, sourceCurrency, target)
	if err != nil {
		return "", decimal.Zero, err
	}
	return target, converted, nil
}
