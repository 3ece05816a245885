package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegionRow is one row of the storefront's published region/currency table.
// CountriesOrRegions may name several countries separated by commas.
type RegionRow struct {
	ReportRegion       string `json:"reportRegion"`
	ReportCurrency     string `json:"reportCurrency"`
	RegionCode         string `json:"regionCode"`
	CountriesOrRegions string `json:"countriesOrRegions"`
}

// MarketCurrency is the storefront's settlement setup for a single country.
type MarketCurrency struct {
	ReportRegion   string `json:"reportRegion"`
	ReportCurrency string `json:"reportCurrency"`
	RegionCode     string `json:"regionCode"`
	Country        string `json:"country"`
}

// ReferencePriceRow is one row of the reference-price sheet: a free-text
// country name and a known published price for that market.
type ReferencePriceRow struct {
	Name  string
	Price decimal.Decimal
}

// PlaceholderRegionCodes are worldwide/placeholder rows in the storefront
// table that never map to a single country.
var PlaceholderRegionCodes = map[string]struct{}{
	"ZZ": {},
	"Z1": {},
}

// AggregateRegionCodes are broad groupings whose rows must not overwrite a
// country already claimed by a more specific region (e.g. Vietnam has its own
// currency row but is also listed under WW).
var AggregateRegionCodes = map[string]struct{}{
	"EU": {},
	"LL": {},
	"WW": {},
}

// ExchangeRate is one entry of the primary offline rate table.
type ExchangeRate struct {
	RateID           string          `json:"rateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	CreatedAt        time.Time       `json:"createdAt"`
}
