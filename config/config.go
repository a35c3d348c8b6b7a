package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// MongoConfig holds MongoDB configuration.
type MongoConfig struct {
	URI             string
	Database        string
	ConnectTimeout  time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SessionConfig holds session token and cookie configuration.
type SessionConfig struct {
	// Secret signs the session tokens. Process-wide, never rotated at runtime.
	Secret         string
	TTL            time.Duration
	CookieDomain   string
	CookiePath     string
	SecureCookies  bool
	CookieSameSite string
}

// AuthConfig holds password hashing configuration.
type AuthConfig struct {
	// Argon2 parameters
	Argon2Memory      uint32
	Argon2Iterations  uint32
	Argon2Parallelism uint8
	Argon2SaltLength  uint32
	Argon2KeyLength   uint32
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	AllowedOrigins   []string
	RateLimitEnabled bool
	RateLimitRPS     int
	RateLimitBurst   int
	// Auth endpoints get a stricter per-IP window in Redis.
	AuthRateLimitMax    int
	AuthRateLimitWindow time.Duration
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level       string
	Environment string
}

// AuditConfig holds the security audit log configuration.
type AuditConfig struct {
	Enabled       bool
	DBPath        string
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
	RetentionDays int
}

// Load loads configuration from the environment, reading a local .env file
// first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Mongo: MongoConfig{
			URI:             getEnv("MONGODB_URL", "mongodb://localhost:27017"),
			Database:        getEnv("MONGODB_DATABASE", "flixx"),
			ConnectTimeout:  getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:     getEnvUint64("MONGODB_MAX_POOL_SIZE", 100),
			MinPoolSize:     getEnvUint64("MONGODB_MIN_POOL_SIZE", 1),
			MaxConnIdleTime: getEnvDuration("MONGODB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Session: SessionConfig{
			Secret:         getEnv("SESSION_SECRET", ""),
			TTL:            getEnvDuration("SESSION_TTL", 24*time.Hour),
			CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
			CookiePath:     getEnv("COOKIE_PATH", "/"),
			SecureCookies:  getEnvBool("SECURE_COOKIES", true),
			CookieSameSite: getEnv("COOKIE_SAME_SITE", "None"),
		},
		Auth: AuthConfig{
			// Argon2id recommended parameters (OWASP)
			Argon2Memory:      getEnvUint32("ARGON2_MEMORY", 64*1024), // 64 MB
			Argon2Iterations:  getEnvUint32("ARGON2_ITERATIONS", 3),
			Argon2Parallelism: getEnvUint8("ARGON2_PARALLELISM", 4),
			Argon2SaltLength:  getEnvUint32("ARGON2_SALT_LENGTH", 16),
			Argon2KeyLength:   getEnvUint32("ARGON2_KEY_LENGTH", 32),
		},
		Security: SecurityConfig{
			AllowedOrigins:      getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
			RateLimitEnabled:    getEnvBool("RATE_LIMIT_ENABLED", true),
			RateLimitRPS:        getEnvInt("RATE_LIMIT_RPS", 100),
			RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 200),
			AuthRateLimitMax:    getEnvInt("AUTH_RATE_LIMIT_MAX", 10),
			AuthRateLimitWindow: getEnvDuration("AUTH_RATE_LIMIT_WINDOW", time.Minute),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Audit: AuditConfig{
			Enabled:       getEnvBool("AUDIT_ENABLED", true),
			DBPath:        getEnv("AUDIT_DB_PATH", "./data/audit.db"),
			BufferSize:    getEnvInt("AUDIT_BUFFER_SIZE", 1000),
			BatchSize:     getEnvInt("AUDIT_BATCH_SIZE", 100),
			FlushInterval: getEnvDuration("AUDIT_FLUSH_INTERVAL", 100*time.Millisecond),
			RetentionDays: getEnvInt("AUDIT_RETENTION_DAYS", 30),
		},
	}
}

// SameSite converts the configured SameSite name to its http constant.
func (c *SessionConfig) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint32(key string, defaultValue uint32) uint32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint32(intValue)
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint8(key string, defaultValue uint8) uint8 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseUint(value, 10, 8); err == nil {
			return uint8(intValue)
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
