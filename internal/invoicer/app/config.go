package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/invoicer/pkg/jwtx"
	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Revocation backends.
const (
	RevocationMemory = "memory"
	RevocationCache  = "cache"
	RevocationRedis  = "redis"
)

type Config struct {
	Issuer     string        // issuer claim for tokens (default: invoicer)
	Algorithm  string        // JWT signing algorithm, EdDSA or HS256 (default: EdDSA)
	JWTSecret  string        // shared secret, required for HS256
	NumKeys    int           // number of EdDSA signing keys (default: 1, max: 10)
	KeyFile    string        // PKCS8 PEM Ed25519 key; replaces the ephemeral EdDSA keys when set
	AccessTTL  time.Duration // access token lifetime (default: 15m)
	RefreshTTL time.Duration // refresh token lifetime (default: 168h)

	DBDriver     string // sqlite or postgres (default: sqlite)
	DatabaseFile string // SQLite database file (default: ./invoicer.db)
	DatabaseURL  string // postgres DSN, required for the postgres driver
	PepperFile   string // file holding the password pepper (default: ./pepper)

	RevocationBackend       string // memory, cache or redis (default: memory)
	RevocationRetainExpired bool   // keep revoked ids past their expiry (default: true)
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int

	Env                  string        // dev, staging, prod (default: dev)
	LogLevel             string        // debug, info, warn, error (default: info)
	LogFormat            string        // json, text (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // housekeeping interval (default: 1h)
}

// LoadConfig reads the configuration from the environment. Variables from a
// .env file in the working directory are loaded first without overriding
// the ones already set.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Issuer:     getEnvOrDefault("INVOICER_ISSUER", "invoicer"),
		Algorithm:  getEnvOrDefault("INVOICER_ALGORITHM", jwtx.AlgorithmEdDSA),
		JWTSecret:  os.Getenv("INVOICER_JWT_SECRET"),
		NumKeys:    getEnvIntOrDefault("INVOICER_NUM_KEYS", 1),
		KeyFile:    os.Getenv("INVOICER_SIGNING_KEY_FILE"),
		AccessTTL:  getEnvDurationOrDefault("INVOICER_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("INVOICER_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),

		DBDriver:     strings.ToLower(getEnvOrDefault("INVOICER_DB_DRIVER", DriverSQLite)),
		DatabaseFile: getEnvOrDefault("INVOICER_DATABASE_FILE", "invoicer.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		PepperFile:   getEnvOrDefault("INVOICER_PEPPER_FILE", "pepper"),

		RevocationBackend:       strings.ToLower(getEnvOrDefault("REVOCATION_BACKEND", RevocationMemory)),
		RevocationRetainExpired: getEnvBoolOrDefault("REVOCATION_RETAIN_EXPIRED", true),
		RedisAddr:               getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 getEnvIntOrDefault("REDIS_DB", 0),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate reports every setting that would stop the service from starting.
func (c Config) Validate() error {
	var errs []error

	switch c.Algorithm {
	case jwtx.AlgorithmEdDSA:
	case jwtx.AlgorithmHS256:
		if len(c.JWTSecret) < jwtx.MinHS256SecretSize {
			errs = append(errs, fmt.Errorf("INVOICER_JWT_SECRET must be at least %d bytes for HS256", jwtx.MinHS256SecretSize))
		}
		if c.KeyFile != "" {
			errs = append(errs, errors.New("INVOICER_SIGNING_KEY_FILE only applies to EdDSA"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported INVOICER_ALGORITHM %q", c.Algorithm))
	}

	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("token lifetimes must be positive"))
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("INVOICER_DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported INVOICER_DB_DRIVER %q", c.DBDriver))
	}

	switch c.RevocationBackend {
	case RevocationMemory, RevocationCache:
	case RevocationRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis revocation backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported REVOCATION_BACKEND %q", c.RevocationBackend))
	}

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
