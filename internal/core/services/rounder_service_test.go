package services_test

import (
	"testing"

	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRound_SnapsOntoMarketGrid(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		price     string
		want      string
	}{
		{"India's decade+8 grid", "98", "101.37", "98"},
		{"generic .99 grid", "0.99", "12.34", "12.99"},
		{"hundred+99 grid", "999", "1063", "1099"},
		{"bare decade grid", "120", "123.4", "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := new(MockMarketCatalog)
			catalog.On("ReferencePrice", "IN").Return(decimal.RequireFromString(tt.reference), true).Once()

			rounder := services.NewPriceRounder(catalog)
			got, err := rounder.Round("IN", decimal.RequireFromString(tt.price))

			require.NoError(t, err)
			require.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
			catalog.AssertExpectations(t)
		})
	}
}

func TestRound_NoReferencePrice(t *testing.T) {
	catalog := new(MockMarketCatalog)
	catalog.On("ReferencePrice", "XX").Return(decimal.Zero, false).Once()

	rounder := services.NewPriceRounder(catalog)
	_, err := rounder.Round("XX", decimal.RequireFromString("9.99"))

	require.Error(t, err)
	require.ErrorIs(t, err, apperrors.ErrNoReferencePrice)
}
