package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/core/ports"
	"github.com/shopspring/decimal"
)

// CurrencyConverter converts amounts between currencies using the primary
// offline rate table, falling back to the remote rate service when the table
// lacks the pair. Arithmetic stays in decimals end to end.
type CurrencyConverter struct {
	primary ports.RateSource
	remote  ports.RateServiceClient
}

// NewCurrencyConverter creates a new CurrencyConverter.
func NewCurrencyConverter(primary ports.RateSource, remote ports.RateServiceClient) *CurrencyConverter {
	return &CurrencyConverter{
		primary: primary,
		remote:  remote,
	}
}

// Convert returns amount expressed in toCode. Equal currency codes return the
// amount unchanged without any lookup. Failure of both the primary table and
// the remote fallback is a hard error; there is no default rate.
func (s *CurrencyConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if fromCode == toCode {
		return amount, nil
	}

	rate, err := s.primary.Rate(ctx, fromCode, toCode)
	if err == nil {
		return amount.Mul(rate), nil
	}
	if !errors.Is(err, apperrors.ErrUnsupportedConversion) {
		return decimal.Zero, fmt.Errorf("primary rate lookup %s->%s: %w", fromCode, toCode, err)
	}

	rates, err := s.remote.LatestRates(ctx, strings.ToLower(fromCode))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: remote rate lookup: %v", apperrors.ErrConversionFailed, fromCode, toCode, err)
	}
	rate, ok := rates[strings.ToLower(toCode)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s->%s: remote service has no rate for %s", apperrors.ErrConversionFailed, fromCode, toCode, toCode)
	}
	return amount.Mul(rate), nil
}
