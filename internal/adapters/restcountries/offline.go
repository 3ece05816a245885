package restcountries

import (
	"context"

	"github.com/biter777/countries"
	"github.com/musicmuni/pppfy/internal/core/domain"
)

// OfflineProvider serves the country dataset from the embedded ISO tables,
// for air-gapped runs where restcountries.com is unreachable. It carries only
// English names and alpha-3 spellings, so fuzzy coverage is thinner than the
// remote dataset's translation sets.
type OfflineProvider struct{}

// NewOfflineProvider creates an OfflineProvider.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

// Countries lists every known country from the embedded dataset.
func (p *OfflineProvider) Countries(_ context.Context) ([]domain.Country, error) {
	all := countries.All()
	out := make([]domain.Country, 0, len(all))
	for _, c := range all {
		if c == countries.Unknown {
			continue
		}
		info := c.Info()
		out = append(out, domain.Country{
			CCA2: c.Alpha2(),
			Name: domain.CountryName{
				Common:   info.Name,
				Official: info.Name,
			},
			AltSpellings: []string{c.Alpha3()},
		})
	}
	return out, nil
}
