// Package config handles configuration loading for the series service.
package config

import (
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the series service.
type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	JWTSecret     string
	JWTExpiry     time.Duration
	Port          string
	Environment   string

	AllowedOrigins []string

	LogLevel string
	LogFile  string

	UploadDir      string
	UploadMaxBytes int64
	PublicBaseURL  string

	LoginMaxAttempts int
	LoginLockout     time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var missing []string
	required := func(key string) string {
		value, err := GetEnvRequired(key)
		if err != nil {
			missing = append(missing, key)
		}
		return value
	}

	cfg := &Config{
		DBHost:           required("DB_HOST"),
		DBPort:           required("DB_PORT"),
		DBUser:           required("DB_USER"),
		DBPassword:       required("DB_PASSWORD"),
		DBName:           required("DB_NAME"),
		DBSSLMode:        GetEnv("DB_SSLMODE", "disable"),
		RedisHost:        GetEnv("REDIS_HOST", ""),
		RedisPort:        GetEnv("REDIS_PORT", "6379"),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:        required("JWT_SECRET"),
		JWTExpiry:        parseDuration(GetEnv("JWT_EXPIRES_IN", "1h"), time.Hour),
		Port:             GetEnv("PORT", "3000"),
		Environment:      GetEnv("ENVIRONMENT", "development"),
		AllowedOrigins:   splitList(GetEnv("ALLOWED_ORIGINS", "")),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		LogFile:          GetEnv("LOG_FILE", ""),
		UploadDir:        GetEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:   int64(parseInt(GetEnv("UPLOAD_MAX_BYTES", ""), 5<<20)),
		PublicBaseURL:    strings.TrimSuffix(GetEnv("PUBLIC_BASE_URL", ""), "/"),
		LoginMaxAttempts: parseInt(GetEnv("LOGIN_MAX_ATTEMPTS", ""), 5),
		LoginLockout:     parseDuration(GetEnv("LOGIN_LOCKOUT", "15m"), 15*time.Minute),
	}

	if len(missing) > 0 {
		return nil, &MissingEnvError{Keys: missing}
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// RedisEnabled reports whether a Redis host has been configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
