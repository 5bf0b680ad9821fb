package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Remote query deadlines. List queries hit the larger joins and get a
	// longer deadline.
	QueryTimeout     time.Duration
	ListQueryTimeout time.Duration

	// Retry policy applied to idempotent data-access operations.
	RetryAttempts int
	RetryBackoff  time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "farmops-backend")
	viper.SetDefault("QUERY_TIMEOUT", "10s")
	viper.SetDefault("LIST_QUERY_TIMEOUT", "15s")
	viper.SetDefault("RETRY_ATTEMPTS", 3)
	viper.SetDefault("RETRY_BACKOFF", "2s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	queryTimeoutStr := viper.GetString("QUERY_TIMEOUT")
	queryTimeout, err := time.ParseDuration(queryTimeoutStr)
	if err != nil {
		queryTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for QUERY_TIMEOUT ('%s'). Defaulting to %s.\n", queryTimeoutStr, queryTimeout)
	}
	cfg.QueryTimeout = queryTimeout

	listQueryTimeoutStr := viper.GetString("LIST_QUERY_TIMEOUT")
	listQueryTimeout, err := time.ParseDuration(listQueryTimeoutStr)
	if err != nil {
		listQueryTimeout = 15 * time.Second
		log.Printf("Warning: Invalid value for LIST_QUERY_TIMEOUT ('%s'). Defaulting to %s.\n", listQueryTimeoutStr, listQueryTimeout)
	}
	cfg.ListQueryTimeout = listQueryTimeout

	cfg.RetryAttempts = viper.GetInt("RETRY_ATTEMPTS")
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
		log.Println("Warning: RETRY_ATTEMPTS must be positive. Defaulting to 3.")
	}

	retryBackoffStr := viper.GetString("RETRY_BACKOFF")
	retryBackoff, err := time.ParseDuration(retryBackoffStr)
	if err != nil {
		retryBackoff = 2 * time.Second
		log.Printf("Warning: Invalid value for RETRY_BACKOFF ('%s'). Defaulting to %s.\n", retryBackoffStr, retryBackoff)
	}
	cfg.RetryBackoff = retryBackoff

	return cfg, nil
}
