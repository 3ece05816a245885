package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/musicmuni/pppfy/internal/adapters/appstore"
	"github.com/musicmuni/pppfy/internal/adapters/database/pgsql"
	"github.com/musicmuni/pppfy/internal/adapters/pricesheet"
	"github.com/musicmuni/pppfy/internal/adapters/rates"
	"github.com/musicmuni/pppfy/internal/adapters/restcountries"
	"github.com/musicmuni/pppfy/internal/core/ports"
	portssvc "github.com/musicmuni/pppfy/internal/core/ports/services"
	"github.com/musicmuni/pppfy/internal/core/services"
	"github.com/musicmuni/pppfy/internal/handlers"
	"github.com/musicmuni/pppfy/internal/middleware"
	"github.com/musicmuni/pppfy/pkg/config"
	"github.com/musicmuni/pppfy/pkg/database"
)

// @title pppfy API
// @version 1.0
// @description Storefront price localization: country resolution, currency conversion and market-grid rounding.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// The primary offline rate table lives in Postgres when a database is
	// configured, otherwise in memory for the lifetime of the process.
	var primaryRates ports.RateSource
	var rateRepo ports.RateRepository
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}

		repo := pgsql.NewRateRepository(dbPool)
		primaryRates = repo
		rateRepo = repo
	} else {
		table := rates.NewTable()
		primaryRates = table
		rateRepo = table
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var countryProvider ports.CountryDatasetProvider
	if cfg.OfflineCountryData {
		countryProvider = restcountries.NewOfflineProvider()
	} else {
		countryProvider = restcountries.NewClient(cfg.CountryDatasetURL, httpClient)
	}

	logger.Info("Building country name index...")
	resolver, err := services.NewCountryResolver(ctx, countryProvider)
	if err != nil {
		logger.Error("Failed to build country resolver", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog := services.NewStorefrontCatalog(resolver, logger)

	logger.Info("Fetching storefront countries and regions information...")
	regionTable := appstore.NewClient(cfg.StorefrontTableURL, httpClient)
	if err := catalog.LoadCurrencyMapping(ctx, regionTable); err != nil {
		logger.Error("Failed to load storefront currency mapping", slog.String("error", err.Error()))
		os.Exit(1)
	}

	priceSheet := pricesheet.NewCSVSource(cfg.ReferencePricesCSV)
	if err := catalog.LoadReferencePrices(ctx, priceSheet); err != nil {
		logger.Error("Failed to load reference prices", slog.String("error", err.Error()))
		os.Exit(1)
	}

	remoteRates := rates.NewCurrencyAPIClient(cfg.RateServiceURL, cfg.RateServiceToken, httpClient)
	converter := services.NewCurrencyConverter(primaryRates, remoteRates)

	container := &portssvc.ServiceContainer{
		Resolver:  resolver,
		Localizer: services.NewPriceLocalizer(catalog, converter),
		Rounder:   services.NewPriceRounder(catalog),
		Catalog:   catalog,
		Rates:     services.NewRateService(rateRepo),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiterRate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), limiterRate)))

	handlers.RegisterRoutes(r, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
