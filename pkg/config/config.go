package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	DatabaseURL  string

	CountryDatasetURL  string
	OfflineCountryData bool
	StorefrontTableURL string
	ReferencePricesCSV string
	CredsFile          string
	RateServiceURL     string
	RateServiceToken   string

	HTTPTimeout time.Duration
	RateLimit   string
}

// creds is the optional on-disk credentials file. Only the rate-service token
// is read from it today.
type creds struct {
	RateServiceToken string `json:"rateServiceToken"`
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("COUNTRY_DATASET_URL", "https://restcountries.com")
	viper.SetDefault("OFFLINE_COUNTRY_DATA", false)
	viper.SetDefault("STOREFRONT_TABLE_URL", "https://developer.apple.com/help/app-store-connect/reference/financial-report-regions-and-currencies/")
	viper.SetDefault("REFERENCE_PRICES_CSV", "resources/appstore_reference_prices.csv")
	viper.SetDefault("CREDS_FILE", "resources/creds.json")
	viper.SetDefault("RATE_SERVICE_URL", "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest/v1/currencies")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Offline rates will be kept in memory only.")
	}

	cfg.CountryDatasetURL = viper.GetString("COUNTRY_DATASET_URL")
	cfg.OfflineCountryData = viper.GetBool("OFFLINE_COUNTRY_DATA")
	cfg.StorefrontTableURL = viper.GetString("STOREFRONT_TABLE_URL")
	cfg.ReferencePricesCSV = viper.GetString("REFERENCE_PRICES_CSV")
	cfg.CredsFile = viper.GetString("CREDS_FILE")
	cfg.RateServiceURL = viper.GetString("RATE_SERVICE_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	timeoutStr := viper.GetString("HTTP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for HTTP_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.HTTPTimeout = timeout

	cfg.RateServiceToken = loadRateServiceToken(cfg.CredsFile)

	return cfg, nil
}

func loadRateServiceToken(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		// The creds file is optional; the public rate CDN needs no token.
		return ""
	}
	var c creds
	if err := json.Unmarshal(data, &c); err != nil {
		log.Printf("Warning: Could not parse creds file %s: %v\n", path, err)
		return ""
	}
	return c.RateServiceToken
}
