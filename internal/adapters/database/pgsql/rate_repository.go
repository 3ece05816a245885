package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PgxRateRepository backs the primary offline rate table with Postgres. It
// implements both the RateRepository and RateSource ports.
type PgxRateRepository struct {
	db *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{db: db}
}

// SaveRate inserts a new exchange rate, replacing any previous entry for the
// same currency pair.
func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (from_currency_code, to_currency_code)
		DO UPDATE SET rate_id = $1, rate = $4, date_effective = $5, created_at = $6
	`
	_, err := r.db.Exec(ctx, query,
		rate.RateID, rate.FromCurrencyCode, rate.ToCurrencyCode, rate.Rate, rate.DateEffective, rate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// FindRate retrieves the stored entry for a currency pair.
func (r *PgxRateRepository) FindRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, from_currency_code, to_currency_code, rate, date_effective, created_at
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, fromCode, toCode).Scan(
		&rate.RateID, &rate.FromCurrencyCode, &rate.ToCurrencyCode, &rate.Rate, &rate.DateEffective, &rate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// Rate returns the conversion ratio for the pair. A missing pair surfaces as
// apperrors.ErrUnsupportedConversion so the converter falls back to the
// remote service.
func (r *PgxRateRepository) Rate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	rate, err := r.FindRate(ctx, fromCode, toCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s->%s", apperrors.ErrUnsupportedConversion, fromCode, toCode)
		}
		return decimal.Zero, err
	}
	return rate.Rate, nil
}
