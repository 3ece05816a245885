package services

import (
	"context"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/musicmuni/pppfy/internal/dto"
	"github.com/shopspring/decimal"
)

// CountryResolverSvc resolves free-text country names to ISO alpha-2 codes.
type CountryResolverSvc interface {
	// Resolve returns the code and true, or "" and false when unresolved.
	// It never returns an error; every attempt is recorded in the audit log.
	Resolve(name string) (string, bool)

	// Audit returns a copy of the match-audit log keyed by resolved code
	// (or domain.AuditKeyUnresolved).
	Audit() map[string][]domain.MatchRecord
}

// CurrencyConverterSvc converts an amount between two currency codes.
type CurrencyConverterSvc interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)
}

// PriceLocalizerSvc maps a source price into a market's report currency.
type PriceLocalizerSvc interface {
	Localize(ctx context.Context, countryCode string, amount decimal.Decimal, sourceCurrency string) (string, decimal.Decimal, error)
}

// PriceRounderSvc snaps a price onto a market's inferred price grid.
type PriceRounderSvc interface {
	Round(countryCode string, price decimal.Decimal) (decimal.Decimal, error)
}

// MarketCatalogSvc exposes the per-country tables owned by a storefront
// catalog session.
type MarketCatalogSvc interface {
	ReportCurrency(countryCode string) (string, bool)
	ReferencePrice(countryCode string) (decimal.Decimal, bool)
	Markets() []domain.MarketCurrency
}

// RateSvcFacade manages the primary offline rate table.
type RateSvcFacade interface {
	CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.ExchangeRate, error)
	GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}
