package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerPricingRoutes(v1, services.Localizer, services.Rounder)
	registerCountryRoutes(v1, services.Resolver)
	registerMarketRoutes(v1, services.Catalog)
	registerRateRoutes(v1, services.Rates)
}
