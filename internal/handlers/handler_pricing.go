package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/musicmuni/pppfy/internal/apperrors"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/musicmuni/pppfy/internal/dto"
	"github.com/musicmuni/pppfy/internal/middleware"
)

// pricingHandler handles HTTP requests for price localization.
type pricingHandler struct {
	localizer portssvc.PriceLocalizerSvc
	rounder   portssvc.PriceRounderSvc
}

func newPricingHandler(localizer portssvc.PriceLocalizerSvc, rounder portssvc.PriceRounderSvc) *pricingHandler {
	return &pricingHandler{
		localizer: localizer,
		rounder:   rounder,
	}
}

// registerPricingRoutes registers routes related to price localization.
func registerPricingRoutes(rg *gin.RouterGroup, localizer portssvc.PriceLocalizerSvc, rounder portssvc.PriceRounderSvc) {
	h := newPricingHandler(localizer, rounder)

	prices := rg.Group("/prices")
	{
		prices.POST("/localize", h.localizePrice)
	}
}

// localizePrice godoc
// @Summary Localize a price for a target market
// @Description Converts a source price into the market's report currency and snaps it onto the market's price grid
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   price body dto.LocalizePriceRequest true "Price details"
// @Success 200 {object} dto.LocalizePriceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No reference price for market"
// @Failure 502 {object} map[string]string "Currency conversion failed"
// @Router /prices/localize [post]
func (h *pricingHandler) localizePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LocalizePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for LocalizePrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("country_code", req.CountryCode),
		slog.String("source_currency", req.CurrencyCode),
	)

	currency, converted, err := h.localizer.Localize(c.Request.Context(), req.CountryCode, req.Amount, req.CurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrConversionFailed) {
			logger.Error("Currency conversion failed", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Currency conversion failed"})
		} else {
			logger.Error("Failed to localize price", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to localize price"})
		}
		return
	}

	resp := dto.LocalizePriceResponse{
		CountryCode:     req.CountryCode,
		CurrencyCode:    currency,
		ConvertedAmount: converted,
	}

	if !req.SkipRounding {
		rounded, err := h.rounder.Round(req.CountryCode, converted)
		if err != nil {
			if errors.Is(err, apperrors.ErrNoReferencePrice) {
				logger.Warn("No reference price for market")
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No reference price for market " + req.CountryCode})
			} else {
				logger.Error("Failed to round price", slog.String("error", err.Error()))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to round price"})
			}
			return
		}
		resp.RoundedAmount = &rounded
	}

	logger.Info("Price localized", slog.String("target_currency", currency))
	c.JSON(http.StatusOK, resp)
}
