package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	SnapshotPath string
	IsProduction bool
	SeedDemoData bool
	// RateLimit is a ulule/limiter formatted rate, e.g. "60-M" for 60 req/min.
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SNAPSHOT_PATH", "data/snapshot.json")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.SnapshotPath = viper.GetString("SNAPSHOT_PATH")
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = "data/snapshot.json"
		log.Printf("Warning: SNAPSHOT_PATH environment variable not set. Defaulting to %s\n", cfg.SnapshotPath)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.SeedDemoData = viper.GetBool("SEED_DEMO_DATA")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "120-M"
	}

	originsStr := viper.GetString("CORS_ALLOWED_ORIGINS")
	for _, origin := range strings.Split(originsStr, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
