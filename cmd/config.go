package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"otcdesk/internal/adapters/out/pricing"
	"otcdesk/internal/core/domain/model/kernel"
	"otcdesk/internal/jobs"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

var ErrJWTSecretRequired = errors.New("JWT_SECRET is required")

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool

	RPCURL               string
	PriceCacheTTL        time.Duration
	PriceRefreshSchedule string
	PriceFeeds           map[kernel.Asset]common.Address

	CORSAllowedOrigins []string
	LogLevel           string
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration from the environment. Variables from
// envFile, when it exists, fill in what the environment leaves unset.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return configFromEnv(os.LookupEnv)
}

func configFromEnv(lookup func(string) (string, bool)) (Config, error) {
	env := func(key, def string) string {
		if v, found := lookup(key); found && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		HTTPPort:             env("HTTP_PORT", "8080"),
		DBHost:               env("DB_HOST", "localhost"),
		DBPort:               env("DB_PORT", "5432"),
		DBUser:               env("DB_USER", "postgres"),
		DBPassword:           env("DB_PASSWORD", ""),
		DBName:               env("DB_NAME", "otc_desk"),
		DBSslMode:            env("DB_SSLMODE", "disable"),
		JWTSecret:            env("JWT_SECRET", ""),
		RPCURL:               env("RPC_URL", ""),
		PriceRefreshSchedule: env("PRICE_REFRESH_SCHEDULE", jobs.DefaultPriceRefreshSchedule),
		LogLevel:             env("LOG_LEVEL", "info"),
		PriceFeeds:           make(map[kernel.Asset]common.Address),
	}
	if cfg.JWTSecret == "" {
		return Config{}, ErrJWTSecretRequired
	}

	var err error
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", env("SESSION_TTL", "24h")); err != nil {
		return Config{}, err
	}
	if cfg.PriceCacheTTL, err = parseDuration("PRICE_CACHE_TTL", env("PRICE_CACHE_TTL", pricing.DefaultTTL.String())); err != nil {
		return Config{}, err
	}
	if cfg.SecureCookie, err = strconv.ParseBool(env("COOKIE_SECURE", "false")); err != nil {
		return Config{}, fmt.Errorf("COOKIE_SECURE: %w", err)
	}

	for _, origin := range strings.Split(env("CORS_ALLOWED_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	for _, asset := range kernel.SupportedAssets() {
		key := asset.String() + "_USD_FEED"
		raw := env(key, "")
		if raw == "" {
			continue
		}
		if !common.IsHexAddress(raw) {
			return Config{}, fmt.Errorf("%s: %q is not an address", key, raw)
		}
		cfg.PriceFeeds[asset] = common.HexToAddress(raw)
	}

	return cfg, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive", key)
	}
	return d, nil
}
