package dto

import (
	"time"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRateRequest defines the data needed to add an offline exchange rate.
type CreateRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,uppercase,len=3"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,uppercase,len=3"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	DateEffective    time.Time       `json:"dateEffective"`
}

// RateResponse defines the data returned for an offline exchange rate.
type RateResponse struct {
	RateID           string          `json:"rateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToRateResponse converts a domain.ExchangeRate to a RateResponse DTO.
func ToRateResponse(rate *domain.ExchangeRate) RateResponse {
	return RateResponse{
		RateID:           rate.RateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		DateEffective:    rate.DateEffective,
		CreatedAt:        rate.CreatedAt,
	}
}
