package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/musicmuni/pppfy/internal/apperrors"
	"github.com/musicmuni/pppfy/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock PriceLocalizerSvc ---
type MockPriceLocalizer struct {
	mock.Mock
}

func (m *MockPriceLocalizer) Localize(ctx context.Context, countryCode string, amount decimal.Decimal, sourceCurrency string) (string, decimal.Decimal, error) {
	args := m.Called(ctx, countryCode, amount, sourceCurrency)
	return args.String(0), args.Get(1).(decimal.Decimal), args.Error(2)
}

// --- Mock PriceRounderSvc ---
type MockPriceRounder struct {
	mock.Mock
}

func (m *MockPriceRounder) Round(countryCode string, price decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(countryCode, price)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type PricingHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockLocalizer *MockPriceLocalizer
	mockRounder   *MockPriceRounder
}

func (suite *PricingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockLocalizer = new(MockPriceLocalizer)
	suite.mockRounder = new(MockPriceRounder)

	suite.router = gin.New()
	registerPricingRoutes(suite.router.Group("/api/v1"), suite.mockLocalizer, suite.mockRounder)
}

func (suite *PricingHandlerTestSuite) localize(body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prices/localize", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PricingHandlerTestSuite) TestLocalizePrice_Success() {
	amount := decimal.RequireFromString("9.99")
	converted := decimal.RequireFromString("834.17")
	rounded := decimal.RequireFromString("838")
	suite.mockLocalizer.On("Localize", mock.Anything, "IN", amount, "USD").Return("INR", converted, nil).Once()
	suite.mockRounder.On("Round", "IN", converted).Return(rounded, nil).Once()

	w := suite.localize(dto.LocalizePriceRequest{CountryCode: "IN", Amount: amount, CurrencyCode: "USD"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LocalizePriceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("INR", resp.CurrencyCode)
	suite.True(converted.Equal(resp.ConvertedAmount))
	suite.Require().NotNil(resp.RoundedAmount)
	suite.True(rounded.Equal(*resp.RoundedAmount))
}

func (suite *PricingHandlerTestSuite) TestLocalizePrice_SkipRounding() {
	amount := decimal.RequireFromString("9.99")
	converted := decimal.RequireFromString("834.17")
	suite.mockLocalizer.On("Localize", mock.Anything, "IN", amount, "USD").Return("INR", converted, nil).Once()

	w := suite.localize(dto.LocalizePriceRequest{CountryCode: "IN", Amount: amount, CurrencyCode: "USD", SkipRounding: true})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LocalizePriceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Nil(resp.RoundedAmount)
	suite.mockRounder.AssertNotCalled(suite.T(), "Round", mock.Anything, mock.Anything)
}

func (suite *PricingHandlerTestSuite) TestLocalizePrice_InvalidBody() {
	w := suite.localize(gin.H{"countryCode": "india", "currencyCode": "USD"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLocalizer.AssertNotCalled(suite.T(), "Localize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PricingHandlerTestSuite) TestLocalizePrice_NoReferencePrice() {
	amount := decimal.RequireFromString("9.99")
	converted := decimal.RequireFromString("834.17")
	suite.mockLocalizer.On("Localize", mock.Anything, "XK", amount, "USD").Return("EUR", converted, nil).Once()
	suite.mockRounder.On("Round", "XK", converted).Return(decimal.Zero, apperrors.ErrNoReferencePrice).Once()

	w := suite.localize(dto.LocalizePriceRequest{CountryCode: "XK", Amount: amount, CurrencyCode: "USD"})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *PricingHandlerTestSuite) TestLocalizePrice_ConversionFailure() {
	amount := decimal.RequireFromString("9.99")
	suite.mockLocalizer.On("Localize", mock.Anything, "VN", amount, "USD").Return("", decimal.Zero, apperrors.ErrConversionFailed).Once()

	w := suite.localize(dto.LocalizePriceRequest{CountryCode: "VN", Amount: amount, CurrencyCode: "USD"})

	suite.Equal(http.StatusBadGateway, w.Code)
}

func TestPricingHandler(t *testing.T) {
	suite.Run(t, new(PricingHandlerTestSuite))
}

func TestLocalizePrice_MalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	registerPricingRoutes(router.Group("/api/v1"), new(MockPriceLocalizer), new(MockPriceRounder))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prices/localize", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request format")
}
