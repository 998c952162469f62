package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string // postgres or memory
	MigrationsPath string

	// Authentication
	AuthEnabled bool
	JWTSecret   string
	JWTIssuer   string
	APIKeyHash  string // bcrypt hash of the service API key, empty disables API key auth

	// HTTP surface
	RateLimit          string // ulule formatted, e.g. 100-M
	CORSAllowedOrigins []string
	DefaultPageSize    int
	MaxPageSize        int

	// Settlement events
	KafkaBrokers []string
	KafkaTopic   string

	// SettlementBalanceFloor rejects settlements that would leave a balance below it. Nil disables the check.
	SettlementBalanceFloor *decimal.Decimal
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "payables-ledger")
	v.SetDefault("API_KEY_HASH", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_PAGE_SIZE", 20)
	v.SetDefault("MAX_PAGE_SIZE", 200)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "obligation_settled")
	v.SetDefault("SETTLEMENT_BALANCE_FLOOR", "")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		AuthEnabled:        v.GetBool("AUTH_ENABLED"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		APIKeyHash:         v.GetString("API_KEY_HASH"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultPageSize:    v.GetInt("DEFAULT_PAGE_SIZE"),
		MaxPageSize:        v.GetInt("MAX_PAGE_SIZE"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageDriverMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q, expected %q or %q", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	if cfg.AuthEnabled && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.DefaultPageSize <= 0 || cfg.MaxPageSize <= 0 || cfg.DefaultPageSize > cfg.MaxPageSize {
		return nil, fmt.Errorf("invalid page sizes: DEFAULT_PAGE_SIZE=%d MAX_PAGE_SIZE=%d", cfg.DefaultPageSize, cfg.MaxPageSize)
	}

	if raw := strings.TrimSpace(v.GetString("SETTLEMENT_BALANCE_FLOOR")); raw != "" {
		floor, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SETTLEMENT_BALANCE_FLOOR %q: %w", raw, err)
		}
		cfg.SettlementBalanceFloor = &floor
	}

	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BROKERS not set. Settlement events will not be published.")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
