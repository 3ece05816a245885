package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/musicmuni/pppfy/internal/core/ports"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// StorefrontCatalog owns the per-country tables of a localization session:
// the report-currency mapping and the reference-price table. Both are built
// once at load time and read-only afterwards.
type StorefrontCatalog struct {
	resolver        portssvc.CountryResolverSvc
	logger          *slog.Logger
	currencyByCode  map[string]domain.MarketCurrency
	referencePrices map[string]decimal.Decimal
}

// NewStorefrontCatalog creates an empty catalog session.
func NewStorefrontCatalog(resolver portssvc.CountryResolverSvc, logger *slog.Logger) *StorefrontCatalog {
	return &StorefrontCatalog{
		resolver:        resolver,
		logger:          logger,
		currencyByCode:  make(map[string]domain.MarketCurrency),
		referencePrices: make(map[string]decimal.Decimal),
	}
}

// LoadCurrencyMapping builds the country->report-currency table from the
// storefront's region table. Placeholder rows (ZZ, Z1) are skipped,
// multi-country rows are split into one entry per resolved country, and rows
// from aggregate regions (EU, LL, WW) never overwrite a country already
// claimed by a more specific region. Countries that fail to resolve are
// logged and dropped.
func (c *StorefrontCatalog) LoadCurrencyMapping(ctx context.Context, provider ports.RegionTableProvider) error {
	rows, err := provider.RegionRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch storefront region table: %w", err)
	}

	for _, row := range rows {
		if _, skip := domain.PlaceholderRegionCodes[row.RegionCode]; skip {
			continue
		}

		if !strings.Contains(row.CountriesOrRegions, ",") {
			c.currencyByCode[row.RegionCode] = domain.MarketCurrency{
				ReportRegion:   row.ReportRegion,
				ReportCurrency: row.ReportCurrency,
				RegionCode:     row.RegionCode,
				Country:        row.CountriesOrRegions,
			}
			continue
		}

		_, aggregate := domain.AggregateRegionCodes[row.RegionCode]
		for _, name := range strings.Split(row.CountriesOrRegions, ",") {
			name = strings.TrimSpace(name)
			code, ok := c.resolver.Resolve(name)
			if !ok {
				c.logger.Warn("Dropping unresolved country from region table",
					slog.String("country", name),
					slog.String("region_code", row.RegionCode))
				continue
			}
			// Countries like Vietnam have their own currency row but are
			// listed under WW as well; the specific market's currency wins.
			if _, exists := c.currencyByCode[code]; exists && aggregate {
				continue
			}
			c.currencyByCode[code] = domain.MarketCurrency{
				ReportRegion:   row.ReportRegion,
				ReportCurrency: row.ReportCurrency,
				RegionCode:     code,
				Country:        name,
			}
		}
	}

	c.logger.Info("Storefront currency mapping loaded", slog.Int("markets", len(c.currencyByCode)))
	return nil
}

// LoadReferencePrices builds the reference-price table, resolving each row's
// country text through the resolver. Unresolved rows are logged and skipped.
func (c *StorefrontCatalog) LoadReferencePrices(ctx context.Context, source ports.ReferencePriceSource) error {
	rows, err := source.ReferencePrices(ctx)
	if err != nil {
		return fmt.Errorf("failed to read reference prices: %w", err)
	}

	for _, row := range rows {
		code, ok := c.resolver.Resolve(row.Name)
		if !ok {
			c.logger.Warn("No ISO code found for reference price row", slog.String("country", row.Name))
			continue
		}
		c.referencePrices[code] = row.Price
	}

	c.logger.Info("Reference prices loaded", slog.Int("markets", len(c.referencePrices)))
	return nil
}

// ReportCurrency returns the storefront's report currency for countryCode.
func (c *StorefrontCatalog) ReportCurrency(countryCode string) (string, bool) {
	entry, ok := c.currencyByCode[countryCode]
	if !ok {
		return "", false
	}
	return entry.ReportCurrency, true
}

// ReferencePrice returns the known reference price for countryCode.
func (c *StorefrontCatalog) ReferencePrice(countryCode string) (decimal.Decimal, bool) {
	price, ok := c.referencePrices[countryCode]
	return price, ok
}

// Markets lists the loaded currency mapping entries.
func (c *StorefrontCatalog) Markets() []domain.MarketCurrency {
	out := make([]domain.MarketCurrency, 0, len(c.currencyByCode))
	for _, entry := range c.currencyByCode {
		out = append(out, entry)
	}
	return out
}
