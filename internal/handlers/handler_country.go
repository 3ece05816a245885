package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/musicmuni/pppfy/internal/dto"
	"github.com/musicmuni/pppfy/internal/middleware"
)

// countryHandler handles HTTP requests for country resolution.
type countryHandler struct {
	resolver portssvc.CountryResolverSvc
}

func newCountryHandler(resolver portssvc.CountryResolverSvc) *countryHandler {
	return &countryHandler{resolver: resolver}
}

// registerCountryRoutes registers routes related to country resolution.
func registerCountryRoutes(rg *gin.RouterGroup, resolver portssvc.CountryResolverSvc) {
	h := newCountryHandler(resolver)

	countries := rg.Group("/countries")
	{
		countries.GET("/resolve", h.resolveCountry)
		countries.GET("/audit", h.matchAudit)
	}
}

// resolveCountry godoc
// @Summary Resolve a country name to its ISO code
// @Description Maps a free-text country or region name to an ISO 3166-1 alpha-2 code
// @Tags countries
// @Produce  json
// @Param   name query string true "Country or region name"
// @Success 200 {object} dto.ResolveCountryResponse
// @Failure 400 {object} map[string]string "Missing name parameter"
// @Router /countries/resolve [get]
func (h *countryHandler) resolveCountry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'name' is required"})
		return
	}

	code, ok := h.resolver.Resolve(name)
	if !ok {
		logger.Warn("Country name did not resolve", slog.String("name", name))
	}

	c.JSON(http.StatusOK, dto.ResolveCountryResponse{
		Input:       name,
		CountryCode: code,
		Resolved:    ok,
	})
}

// matchAudit godoc
// @Summary Dump the resolver's match-audit log
// @Description Returns every resolution attempt grouped by resolved code, for diagnosing ambiguous or failed lookups
// @Tags countries
// @Produce  json
// @Success 200 {object} map[string][]dto.MatchRecordResponse
// @Router /countries/audit [get]
func (h *countryHandler) matchAudit(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToAuditResponse(h.resolver.Audit()))
}
