package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server Configuration
	Port        string   `env:"PORT" envDefault:"4000"`
	Env         string   `env:"GO_ENV" envDefault:"development"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174,http://localhost:3000"`

	// Database Configuration
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	DBName   string `env:"DB_NAME" envDefault:"netflixdb"`

	// Security Configuration
	JWTSecret string `env:"JWT_SECRET"`

	// Login attempt throttling. 0 disables throttling, which matches
	// the historical behavior of the service.
	LoginThrottleRPS   float64 `env:"LOGIN_THROTTLE_RPS" envDefault:"0"`
	LoginThrottleBurst int     `env:"LOGIN_THROTTLE_BURST" envDefault:"5"`
}

// LoadConfig loads the configuration from environment variables,
// layering in environments/.env.<GO_ENV> when that file exists.
func LoadConfig() (*Config, error) {
	envName := getEnvOrDefault("GO_ENV", "development")
	envFile := filepath.Join("environments", fmt.Sprintf(".env.%s", envName))

	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
