package pricesheet_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/musicmuni/pppfy/internal/adapters/pricesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSheet(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReferencePrices(t *testing.T) {
	path := writeSheet(t, "Countries or Regions,Price\nIndia,99\nUnited States,0.99\nVietnam,24000\n")

	source := pricesheet.NewCSVSource(path)
	rows, err := source.ReferencePrices(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "India", rows[0].Name)
	assert.True(t, decimal.RequireFromString("99").Equal(rows[0].Price))
	// The literal decimal survives; grid classification depends on it.
	assert.Equal(t, "0.99", rows[1].Price.String())
}

func TestReferencePrices_ExtraColumnsByHeader(t *testing.T) {
	path := writeSheet(t, "Tier,Countries or Regions,Price\n1,India,99\n")

	source := pricesheet.NewCSVSource(path)
	rows, err := source.ReferencePrices(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "India", rows[0].Name)
}

func TestReferencePrices_MissingColumn(t *testing.T) {
	path := writeSheet(t, "Country,Amount\nIndia,99\n")

	source := pricesheet.NewCSVSource(path)
	_, err := source.ReferencePrices(context.Background())

	assert.ErrorContains(t, err, "missing")
}

func TestReferencePrices_BadPrice(t *testing.T) {
	path := writeSheet(t, "Countries or Regions,Price\nIndia,not-a-number\n")

	source := pricesheet.NewCSVSource(path)
	_, err := source.ReferencePrices(context.Background())

	assert.ErrorContains(t, err, "invalid reference price")
}

func TestReferencePrices_FileMissing(t *testing.T) {
	source := pricesheet.NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := source.ReferencePrices(context.Background())
	assert.Error(t, err)
}
