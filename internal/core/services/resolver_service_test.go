package services_test

import (
	"context"
	"testing"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/musicmuni/pppfy/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock CountryDatasetProvider ---
type MockCountryDatasetProvider struct {
	mock.Mock
}

func (m *MockCountryDatasetProvider) Countries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Country), args.Error(1)
}

func testDataset() []domain.Country {
	return []domain.Country{
		{
			CCA2:         "US",
			Name:         domain.CountryName{Common: "United States", Official: "United States of America"},
			AltSpellings: []string{"US", "USA", "United States of America"},
			Translations: map[string]domain.CountryName{
				"fra": {Common: "États-Unis", Official: "Les états-unis d'Amérique"},
			},
		},
		{
			CCA2:         "GB",
			Name:         domain.CountryName{Common: "United Kingdom", Official: "United Kingdom of Great Britain and Northern Ireland"},
			AltSpellings: []string{"GB", "UK", "Great Britain"},
		},
		{
			CCA2: "DE",
			Name: domain.CountryName{Common: "Germany", Official: "Federal Republic of Germany"},
			Translations: map[string]domain.CountryName{
				"fra": {Common: "Allemagne", Official: "République fédérale d'Allemagne"},
			},
		},
	}
}

// --- Test Suite ---
type CountryResolverTestSuite struct {
	suite.Suite
	mockProvider *MockCountryDatasetProvider
	resolver     *services.CountryResolver
}

func (suite *CountryResolverTestSuite) SetupTest() {
	suite.mockProvider = new(MockCountryDatasetProvider)
	suite.mockProvider.On("Countries", mock.Anything).Return(testDataset(), nil).Once()

	resolver, err := services.NewCountryResolver(context.Background(), suite.mockProvider)
	suite.Require().NoError(err)
	suite.resolver = resolver
}

func (suite *CountryResolverTestSuite) TestResolve_DirectMatch() {
	code, ok := suite.resolver.Resolve("Germany")
	suite.True(ok)
	suite.Equal("DE", code)

	audit := suite.resolver.Audit()
	suite.Require().Len(audit["DE"], 1)
	suite.Equal(domain.MatchStrategyDirect, audit["DE"][0].Strategy)
	suite.Equal("germany", audit["DE"][0].Input)
}

func (suite *CountryResolverTestSuite) TestResolve_DirectMatchOnTranslation() {
	code, ok := suite.resolver.Resolve("  Allemagne ")
	suite.True(ok)
	suite.Equal("DE", code)
}

func (suite *CountryResolverTestSuite) TestResolve_FuzzyMatch() {
	code, ok := suite.resolver.Resolve("United Kingdm")
	suite.True(ok)
	suite.Equal("GB", code)

	audit := suite.resolver.Audit()
	suite.Require().Len(audit["GB"], 1)
	suite.Equal(domain.MatchStrategyFuzzy, audit["GB"][0].Strategy)
	suite.Equal("united kingdm", audit["GB"][0].Input)
	suite.NotEmpty(audit["GB"][0].MatchedKey)
}

func (suite *CountryResolverTestSuite) TestResolve_NoMatch() {
	code, ok := suite.resolver.Resolve("Atlantis")
	suite.False(ok)
	suite.Equal("", code)

	audit := suite.resolver.Audit()
	suite.Require().Len(audit[domain.AuditKeyUnresolved], 1)
	suite.Equal(domain.MatchStrategyNoMatch, audit[domain.AuditKeyUnresolved][0].Strategy)
}

func (suite *CountryResolverTestSuite) TestResolve_AuditGrowsPerAttempt() {
	suite.resolver.Resolve("Germany")
	suite.resolver.Resolve("germany")
	audit := suite.resolver.Audit()
	suite.Len(audit["DE"], 2)
}

func TestCountryResolver(t *testing.T) {
	suite.Run(t, new(CountryResolverTestSuite))
}

// Exact matches must win without consulting the fuzzy scorer at all.
func TestResolve_ExactMatchNeverFallsThroughToFuzzy(t *testing.T) {
	provider := new(MockCountryDatasetProvider)
	provider.On("Countries", mock.Anything).Return(testDataset(), nil).Once()

	fuzzyCalls := 0
	scorer := func(input, candidate string) int {
		fuzzyCalls++
		return 100
	}

	resolver, err := services.NewCountryResolverWithScorer(context.Background(), provider, scorer)
	require.NoError(t, err)

	code, ok := resolver.Resolve("United Kingdom")
	require.True(t, ok)
	require.Equal(t, "GB", code)
	require.Zero(t, fuzzyCalls, "fuzzy scorer must not run when an exact match exists")
}

// A fuzzy score of exactly 80 stays unresolved; 81 resolves.
func TestResolve_FuzzyThresholdBoundary(t *testing.T) {
	for score, wantResolved := range map[int]bool{80: false, 81: true} {
		provider := new(MockCountryDatasetProvider)
		provider.On("Countries", mock.Anything).Return(testDataset(), nil).Once()

		fixed := score
		resolver, err := services.NewCountryResolverWithScorer(context.Background(), provider,
			func(input, candidate string) int { return fixed })
		require.NoError(t, err)

		code, ok := resolver.Resolve("Nowhereistan")
		require.Equal(t, wantResolved, ok, "score %d", score)
		if wantResolved {
			require.NotEmpty(t, code)
		} else {
			require.Empty(t, code)
		}
	}
}

// The same name listed under two codes resolves to the lexicographically
// first code, deterministically.
func TestResolve_DuplicateNameDeterministicTieBreak(t *testing.T) {
	dataset := []domain.Country{
		{CCA2: "XB", Name: domain.CountryName{Common: "Borderland"}},
		{CCA2: "XA", Name: domain.CountryName{Common: "Borderland"}},
	}
	provider := new(MockCountryDatasetProvider)
	provider.On("Countries", mock.Anything).Return(dataset, nil).Once()

	resolver, err := services.NewCountryResolver(context.Background(), provider)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		code, ok := resolver.Resolve("Borderland")
		require.True(t, ok)
		require.Equal(t, "XA", code)
	}
}
