// Package pricesheet reads the reference-price CSV used to infer each
// market's rounding grid.
package pricesheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Expected column headers of the reference price sheet.
const (
	headerCountries = "Countries or Regions"
	headerPrice     = "Price"
)

// CSVSource reads (country text, price) rows from a CSV file.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source reading from path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// ReferencePrices parses the sheet. Prices are parsed as exact decimals so
// the literal suffix digits survive for grid classification.
func (s *CSVSource) ReferencePrices(_ context.Context) ([]domain.ReferencePriceRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference price sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read reference price header: %w", err)
	}

	nameIdx, priceIdx := -1, -1
	for i, col := range header {
		switch col {
		case headerCountries:
			nameIdx = i
		case headerPrice:
			priceIdx = i
		}
	}
	if nameIdx < 0 || priceIdx < 0 {
		return nil, fmt.Errorf("reference price sheet missing %q or %q column", headerCountries, headerPrice)
	}

	var rows []domain.ReferencePriceRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read reference price row: %w", err)
		}
		price, err := decimal.NewFromString(record[priceIdx])
		if err != nil {
			return nil, fmt.Errorf("invalid reference price %q for %q: %w", record[priceIdx], record[nameIdx], err)
		}
		rows = append(rows, domain.ReferencePriceRow{Name: record[nameIdx], Price: price})
	}
	return rows, nil
}
