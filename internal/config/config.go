package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DatabaseURL string

	// Redis
	EnableCache bool
	RedisURL    string

	// JWT
	JWTSecret string

	// Server
	Port        string
	Environment string

	// CORS
	CORSOrigins []string

	// Site root used to classify editor URLs as local or external. Always
	// passed explicitly into the classification logic, never read globally.
	SiteURL string

	// Default language for dialog strings.
	DefaultLanguage string

	// Upload
	UploadDir     string
	PreviewDir    string
	MaxUploadSize int64

	// Preview bounding box used when the client has not measured its own
	// container yet.
	PreviewBoxWidth  int
	PreviewBoxHeight int

	// Rate Limiting
	RateLimitRequests int
	RateLimitWindow   int
	RateLimitBurst    int

	// Features
	EnableMetrics bool

	// Background probe retries for remote images.
	ProbeWorkerCount int
	ProbeMaxRetries  int
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "mediauser"),
		DBPassword: getEnv("DB_PASSWORD", "mediapassword"),
		DBName:     getEnv("DB_NAME", "mediadb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Redis
		EnableCache: getEnvAsBool("ENABLE_CACHE", true),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// CORS
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		SiteURL:         getEnv("SITE_URL", "http://localhost:8080"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),

		// Upload
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		PreviewDir:    getEnv("PREVIEW_DIR", "./uploads/previews"),
		MaxUploadSize: 10 * 1024 * 1024, // 10MB

		PreviewBoxWidth:  getEnvAsInt("PREVIEW_BOX_WIDTH", 480),
		PreviewBoxHeight: getEnvAsInt("PREVIEW_BOX_HEIGHT", 480),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),

		ProbeWorkerCount: getEnvAsInt("PROBE_WORKER_COUNT", 2),
		ProbeMaxRetries:  getEnvAsInt("PROBE_MAX_RETRIES", 3),
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
