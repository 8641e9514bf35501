package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// CORSAllowOrigins is the list of origins allowed to call the API.
	CORSAllowOrigins []string

	// UploadRateLimit is a ulule/limiter formatted rate ("10-M") applied
	// to the statement upload endpoint.
	UploadRateLimit string

	// Warehouse stock system
	WarehouseURL    string
	WarehouseAPIKey string

	// Payment provider
	MollieBaseURL     string
	MollieAPIKey      string
	MollieRedirectURL string
	MollieWebhookURL  string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Actual environment variables override .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	viper.SetDefault("UPLOAD_RATE_LIMIT", "10-M")
	viper.SetDefault("WAREHOUSE_URL", "")
	viper.SetDefault("WAREHOUSE_API_KEY", "")
	viper.SetDefault("MOLLIE_BASE_URL", "https://api.mollie.com")
	viper.SetDefault("MOLLIE_API_KEY", "")
	viper.SetDefault("MOLLIE_REDIRECT_URL", "")
	viper.SetDefault("MOLLIE_WEBHOOK_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOW_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, origin)
		}
	}

	cfg.UploadRateLimit = viper.GetString("UPLOAD_RATE_LIMIT")

	cfg.WarehouseURL = viper.GetString("WAREHOUSE_URL")
	if cfg.WarehouseURL == "" {
		log.Println("Warning: WAREHOUSE_URL not set. Stock orders will fail.")
	}
	cfg.WarehouseAPIKey = viper.GetString("WAREHOUSE_API_KEY")

	cfg.MollieBaseURL = viper.GetString("MOLLIE_BASE_URL")
	cfg.MollieAPIKey = viper.GetString("MOLLIE_API_KEY")
	if cfg.MollieAPIKey == "" {
		log.Println("Warning: MOLLIE_API_KEY not set. Gateway payments will fail.")
	}
	cfg.MollieRedirectURL = viper.GetString("MOLLIE_REDIRECT_URL")
	cfg.MollieWebhookURL = viper.GetString("MOLLIE_WEBHOOK_URL")

	return cfg, nil
}
