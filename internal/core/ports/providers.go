package ports

import (
	"context"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CountryDatasetProvider supplies the world-country dataset the resolver's
// name index is built from.
type CountryDatasetProvider interface {
	Countries(ctx context.Context) ([]domain.Country, error)
}

// RegionTableProvider supplies the storefront's region/currency table rows.
type RegionTableProvider interface {
	RegionRows(ctx context.Context) ([]domain.RegionRow, error)
}

// ReferencePriceSource supplies (country text, reference price) rows.
type ReferencePriceSource interface {
	ReferencePrices(ctx context.Context) ([]domain.ReferencePriceRow, error)
}

// RateSource is the primary offline rate table. Implementations return
// apperrors.ErrUnsupportedConversion when the pair is not in the table.
type RateSource interface {
	Rate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)
}

// RateServiceClient is the remote fallback rate lookup, keyed by the base
// currency. The returned map is destination code (lower case) to rate.
type RateServiceClient interface {
	LatestRates(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error)
}

// RateRepository manages entries of the primary offline rate table.
type RateRepository interface {
	SaveRate(ctx context.Context, rate domain.ExchangeRate) error
	FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}
