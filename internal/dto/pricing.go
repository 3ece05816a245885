package dto

import (
	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LocalizePriceRequest asks for a price to be expressed in a market's report
// currency and snapped onto its price grid. SkipRounding returns the raw
// converted amount for markets whose grid should not be applied.
type LocalizePriceRequest struct {
	CountryCode  string          `json:"countryCode" binding:"required,uppercase,len=2"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,uppercase,len=3"`
	SkipRounding bool            `json:"skipRounding"`
}

// LocalizePriceResponse carries the localized price. RoundedAmount is nil
// when rounding was skipped.
type LocalizePriceResponse struct {
	CountryCode     string           `json:"countryCode"`
	CurrencyCode    string           `json:"currencyCode"`
	ConvertedAmount decimal.Decimal  `json:"convertedAmount"`
	RoundedAmount   *decimal.Decimal `json:"roundedAmount,omitempty"`
}

// MarketResponse is one entry of the loaded storefront currency mapping.
type MarketResponse struct {
	ReportRegion   string `json:"reportRegion"`
	ReportCurrency string `json:"reportCurrency"`
	RegionCode     string `json:"regionCode"`
	Country        string `json:"country"`
}

// ToMarketResponses converts currency mapping entries to DTOs.
func ToMarketResponses(markets []domain.MarketCurrency) []MarketResponse {
	out := make([]MarketResponse, len(markets))
	for i, m := range markets {
		out[i] = MarketResponse{
			ReportRegion:   m.ReportRegion,
			ReportCurrency: m.ReportCurrency,
			RegionCode:     m.RegionCode,
			Country:        m.Country,
		}
	}
	return out
}

// ResolveCountryResponse is the resolver's verdict for one input string.
type ResolveCountryResponse struct {
	Input       string `json:"input"`
	CountryCode string `json:"countryCode,omitempty"`
	Resolved    bool   `json:"resolved"`
}

// MatchRecordResponse is one audit-log entry.
type MatchRecordResponse struct {
	Input      string `json:"input"`
	MatchedKey string `json:"matchedKey"`
	Strategy   string `json:"strategy"`
}

// ToAuditResponse converts the resolver's audit log into DTO form.
func ToAuditResponse(audit map[string][]domain.MatchRecord) map[string][]MatchRecordResponse {
	out := make(map[string][]MatchRecordResponse, len(audit))
	for key, recs := range audit {
		entries := make([]MatchRecordResponse, len(recs))
		for i, rec := range recs {
			entries[i] = MatchRecordResponse{
				Input:      rec.Input,
				MatchedKey: rec.MatchedKey,
				Strategy:   rec.Strategy,
			}
		}
		out[key] = entries
	}
	return out
}
