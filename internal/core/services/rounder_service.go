package services

import (
	"fmt"

	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/core/domain"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// PriceRounder snaps converted prices onto the price grid a market publishes
// in. The grid is inferred from the market's reference price; a market with
// no reference price cannot be rounded for.
type PriceRounder struct {
	catalog portssvc.MarketCatalogSvc
}

// NewPriceRounder creates a new PriceRounder.
func NewPriceRounder(catalog portssvc.MarketCatalogSvc) *PriceRounder {
	return &PriceRounder{catalog: catalog}
}

// Round classifies countryCode's grid from its reference price and snaps
// price onto it. Returns apperrors.ErrNoReferencePrice when the market has no
// reference price; rounding is never silently defaulted to a generic grid.
func (s *PriceRounder) Round(countryCode string, price decimal.Decimal) (decimal.Decimal, error) {
	ref, ok := s.catalog.ReferencePrice(countryCode)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrNoReferencePrice, countryCode)
	}
	return domain.SnapToGrid(domain.ClassifyGrid(ref), price), nil
}
