package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/musicmuni/pppfy/internal/dto"
)

// marketHandler exposes the loaded storefront currency mapping.
type marketHandler struct {
	catalog portssvc.MarketCatalogSvc
}

func newMarketHandler(catalog portssvc.MarketCatalogSvc) *marketHandler {
	return &marketHandler{catalog: catalog}
}

// registerMarketRoutes registers routes related to storefront markets.
func registerMarketRoutes(rg *gin.RouterGroup, catalog portssvc.MarketCatalogSvc) {
	h := newMarketHandler(catalog)

	markets := rg.Group("/markets")
	{
		markets.GET("", h.listMarkets)
	}
}

// listMarkets godoc
// @Summary List storefront markets
// @Description Returns the loaded country to report-currency mapping
// @Tags markets
// @Produce  json
// @Success 200 {array} dto.MarketResponse
// @Router /markets [get]
func (h *marketHandler) listMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToMarketResponses(h.catalog.Markets()))
}
