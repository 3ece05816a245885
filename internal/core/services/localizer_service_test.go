package services_test

import (
	"context"
	"testing"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"github.com/musicmuni/pppfy/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MarketCatalogSvc ---
type MockMarketCatalog struct {
	mock.Mock
}

func (m *MockMarketCatalog) ReportCurrency(countryCode string) (string, bool) {
	args := m.Called(countryCode)
	return args.String(0), args.Bool(1)
}

func (m *MockMarketCatalog) ReferencePrice(countryCode string) (decimal.Decimal, bool) {
	args := m.Called(countryCode)
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *MockMarketCatalog) Markets() []domain.MarketCurrency {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.MarketCurrency)
}

// --- Mock CurrencyConverterSvc ---
type MockCurrencyConverter struct {
	mock.Mock
}

func (m *MockCurrencyConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, fromCurrency, toCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type PriceLocalizerTestSuite struct {
	suite.Suite
	mockCatalog   *MockMarketCatalog
	mockConverter *MockCurrencyConverter
	localizer     *services.PriceLocalizer
}

func (suite *PriceLocalizerTestSuite) SetupTest() {
	suite.mockCatalog = new(MockMarketCatalog)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.localizer = services.NewPriceLocalizer(suite.mockCatalog, suite.mockConverter)
}

func (suite *PriceLocalizerTestSuite) TestLocalize_ConvertsIntoReportCurrency() {
	ctx := context.Background()
	amount := decimal.RequireFromString("9.99")
	converted := decimal.RequireFromString("834.17")
	suite.mockCatalog.On("ReportCurrency", "IN").Return("INR", true).Once()
	suite.mockConverter.On("Convert", ctx, amount, "USD", "INR").Return(converted, nil).Once()

	currency, got, err := suite.localizer.Localize(ctx, "IN", amount, "USD")

	suite.Require().NoError(err)
	suite.Equal("INR", currency)
	suite.True(converted.Equal(got))
	suite.mockConverter.AssertExpectations(suite.T())
}

// A market already priced in the source currency must not touch the
// converter at all.
func (suite *PriceLocalizerTestSuite) TestLocalize_SameCurrencyPassThrough() {
	ctx := context.Background()
	amount := decimal.RequireFromString("9.99")
	suite.mockCatalog.On("ReportCurrency", "US").Return("USD", true).Once()

	currency, got, err := suite.localizer.Localize(ctx, "US", amount, "USD")

	suite.Require().NoError(err)
	suite.Equal("USD", currency)
	suite.True(amount.Equal(got))
	suite.mockConverter.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Unknown markets fall back to the source currency, which is also a
// pass-through.
func (suite *PriceLocalizerTestSuite) TestLocalize_UnknownMarketKeepsSourceCurrency() {
	ctx := context.Background()
	amount := decimal.RequireFromString("4.99")
	suite.mockCatalog.On("ReportCurrency", "XX").Return("", false).Once()

	currency, got, err := suite.localizer.Localize(ctx, "XX", amount, "USD")

	suite.Require().NoError(err)
	suite.Equal("USD", currency)
	suite.True(amount.Equal(got))
	suite.mockConverter.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PriceLocalizerTestSuite) TestLocalize_ConverterErrorPropagates() {
	ctx := context.Background()
	amount := decimal.RequireFromString("9.99")
	suite.mockCatalog.On("ReportCurrency", "VN").Return("VND", true).Once()
	suite.mockConverter.On("Convert", ctx, amount, "USD", "VND").Return(decimal.Zero, assert.AnError).Once()

	_, _, err := suite.localizer.Localize(ctx, "VN", amount, "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func TestPriceLocalizer(t *testing.T) {
	suite.Run(t, new(PriceLocalizerTestSuite))
}
