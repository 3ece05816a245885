package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/musicmuni/pppfy/internal/core/ports"
	"github.com/musicmuni/pppfy/internal/dto"
	"github.com/shopspring/decimal"
)

// RateService manages the primary offline rate table.
type RateService struct {
	rateRepo ports.RateRepository
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo ports.RateRepository) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// CreateRate validates and persists a new offline rate.
func (s *RateService) CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	dateEffective := req.DateEffective
	if dateEffective.IsZero() {
		dateEffective = time.Now()
	}

	rate := domain.ExchangeRate{
		RateID:           uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    dateEffective,
		CreatedAt:        time.Now(),
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	return &rate, nil
}

// GetRate retrieves the offline rate for a currency pair.
func (s *RateService) GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}
