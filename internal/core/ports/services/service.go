package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Resolver  CountryResolverSvc
	Localizer PriceLocalizerSvc
	Rounder   PriceRounderSvc
	Catalog   MarketCatalogSvc
	Rates     RateSvcFacade
}
