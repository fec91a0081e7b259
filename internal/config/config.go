package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ConsistencyMode selects how multi-row writes (transfers, invites) commit.
type ConsistencyMode string

const (
	// ConsistencyAtomic runs every write of an operation in one database transaction.
	ConsistencyAtomic ConsistencyMode = "atomic"
	// ConsistencyCompensate writes rows one by one and deletes earlier rows
	// when a later write fails.
	ConsistencyCompensate ConsistencyMode = "compensate"
)

// CurrencyParsePolicy selects how malformed currency strings are handled.
type CurrencyParsePolicy string

const (
	// CurrencyLenient leaves the value unset and logs a warning.
	CurrencyLenient CurrencyParsePolicy = "lenient"
	// CurrencyStrict rejects the request with a validation error.
	CurrencyStrict CurrencyParsePolicy = "strict"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Domain behavior
	ConsistencyMode     ConsistencyMode
	CurrencyParsePolicy CurrencyParsePolicy
	Timezone            string

	// Avatars
	AvatarStorage       string
	AvatarBucket        string
	AvatarDir           string
	AvatarPublicBaseURL string
	AvatarMaxBytes      int64
	GCSCredentialsFile  string

	CORSAllowedOrigin string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "confeitaria"),
		DBPassword: getEnv("DB_PASSWORD", "confeitaria"),
		DBName:     getEnv("DB_NAME", "confeitaria"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		ConsistencyMode:     parseConsistencyMode(getEnv("CONSISTENCY_MODE", string(ConsistencyAtomic))),
		CurrencyParsePolicy: parseCurrencyPolicy(getEnv("CURRENCY_PARSE_POLICY", string(CurrencyLenient))),
		Timezone:            getEnv("TIMEZONE", "America/Sao_Paulo"),

		AvatarStorage:       getEnv("AVATAR_STORAGE", "local"),
		AvatarBucket:        getEnv("AVATAR_BUCKET", "avatars"),
		AvatarDir:           getEnv("AVATAR_DIR", "uploads/avatars"),
		AvatarPublicBaseURL: getEnv("AVATAR_PUBLIC_BASE_URL", "/uploads/avatars"),
		AvatarMaxBytes:      getEnvInt64("AVATAR_MAX_BYTES", 2*1024*1024),
		GCSCredentialsFile:  getEnv("GCS_CREDENTIALS_FILE", ""),

		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "15m")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 15m\n", expStr)
		expDur = 15 * time.Minute
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the global configuration. Used by tests and tools that
// build a Config by hand.
func Set(c *Config) {
	appConfig = c
}

func parseConsistencyMode(v string) ConsistencyMode {
	switch ConsistencyMode(strings.ToLower(v)) {
	case ConsistencyCompensate:
		return ConsistencyCompensate
	case ConsistencyAtomic:
		return ConsistencyAtomic
	}
	log.Printf("Warning: unknown CONSISTENCY_MODE '%s', falling back to atomic\n", v)
	return ConsistencyAtomic
}

func parseCurrencyPolicy(v string) CurrencyParsePolicy {
	switch CurrencyParsePolicy(strings.ToLower(v)) {
	case CurrencyStrict:
		return CurrencyStrict
	case CurrencyLenient:
		return CurrencyLenient
	}
	log.Printf("Warning: unknown CURRENCY_PARSE_POLICY '%s', falling back to lenient\n", v)
	return CurrencyLenient
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
