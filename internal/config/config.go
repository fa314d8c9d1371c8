package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultDatabaseURL   = "ledger.db"
	defaultCompanies     = "Avon,Scentia,Zermat"
	defaultTimezone      = "America/Managua"
	defaultDateLayout    = "2/1/2006, 15:04:05"
	defaultCurrency      = "NIO"
	defaultStrictAmounts = "false"
	defaultJWTAccessTTL  = "24h"
	defaultJWTSecret     = "change-me-jwt-secret"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// Companies is the fixed brand set, in display order.
	Companies     []string
	Location      *time.Location
	DateLayout    string
	Currency      string
	StrictAmounts bool

	JWTSecret         string
	JWTAccessTTL      time.Duration
	OwnerPasswordHash string

	CORSAllowedOrigins []string
}

// AuthEnabled reports whether the API requires an owner token.
func (c *Config) AuthEnabled() bool {
	return c.OwnerPasswordHash != "" && !isEmptyOrDefault(c.JWTSecret, defaultJWTSecret)
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.Companies = splitList(getEnv("LEDGER_COMPANIES", defaultCompanies))
	cfg.DateLayout = getEnv("LEDGER_DATE_LAYOUT", defaultDateLayout)
	cfg.Currency = strings.ToUpper(strings.TrimSpace(getEnv("LEDGER_CURRENCY", defaultCurrency)))
	cfg.StrictAmounts = parseBoolEnv("LEDGER_STRICT_AMOUNTS", defaultStrictAmounts)

	tz := strings.TrimSpace(getEnv("LEDGER_TIMEZONE", defaultTimezone))
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE value %q: %w", tz, err)
	}
	cfg.Location = loc

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.OwnerPasswordHash = strings.TrimSpace(os.Getenv("OWNER_PASSWORD_HASH"))
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("ledger config: env=%s companies=%s tz=%s strict_amounts=%t auth=%t",
		cfg.AppEnv, strings.Join(cfg.Companies, ","), cfg.Location, cfg.StrictAmounts, cfg.AuthEnabled())

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if len(cfg.Companies) == 0 {
		return fmt.Errorf("LEDGER_COMPANIES must list at least one company")
	}
	seen := make(map[string]bool, len(cfg.Companies))
	for _, c := range cfg.Companies {
		if seen[c] {
			return fmt.Errorf("LEDGER_COMPANIES has duplicate company %q", c)
		}
		seen[c] = true
	}
	if strings.TrimSpace(cfg.DateLayout) == "" {
		return fmt.Errorf("LEDGER_DATE_LAYOUT must not be empty")
	}
	if len(cfg.Currency) != 3 {
		return fmt.Errorf("LEDGER_CURRENCY must be an ISO 4217 code, got %q", cfg.Currency)
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.OwnerPasswordHash == "" {
			return fmt.Errorf("in prod/release OWNER_PASSWORD_HASH must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
