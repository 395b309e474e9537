package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	StoreBackendMongo  = "mongo"
	StoreBackendMemory = "memory"
)

type Config struct {
	Environment string
	Port        string
	DatabaseURL string
	RedisURL    string

	// Admin session
	SecretKey         string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	TokenTTL          time.Duration

	// Static dashboard
	StaticDir     string
	DashboardFile string

	CORSAllowedOrigins []string

	// Rate limiting
	RateLimitRequest int
	RateLimitWindow  int // minutes
	LoginRateLimit   int

	StoreBackend  string
	RunMigrations bool
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "5000"),
		DatabaseURL: getEnv("MONGO_URI", "mongodb://localhost:27017/SwiftAid"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),

		SecretKey:         getEnv("SECRET_KEY", "supersecret"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenTTL:          time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		StaticDir:     getEnv("STATIC_DIR", "."),
		DashboardFile: getEnv("DASHBOARD_FILE", "admin_dashboard.html"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RateLimitRequest: getEnvAsInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:  getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 1),
		LoginRateLimit:   getEnvAsInt("LOGIN_RATE_LIMIT", 10),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", StoreBackendMongo)),
		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", true),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// InitRedis returns nil when the URL is empty or unparsable; rate limiting is
// then disabled.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Warnf("Invalid REDIS_URL, rate limiting disabled: %v", err)
		return nil
	}

	return redis.NewClient(opt)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
