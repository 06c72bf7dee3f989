package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	ServerPort   string
	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	// IdentityURL is the external identity provider endpoint that turns a
	// one-time session id into a verified profile.
	IdentityURL string
	AdminEmails []string

	LogLevel             string
	LogFormat            string
	SessionPurgeInterval time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskflow"),
		DBPassword: getEnv("DB_PASSWORD", "taskflow"),
		DBName:     getEnv("DB_NAME", "taskflow"),
		SQLitePath: getEnv("SQLITE_PATH", "data/taskflow.db"),

		ServerPort:   getEnv("SERVER_PORT", "8080"),
		JWTSecret:    getEnv("JWT_SECRET", "supersecretkey"),
		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_HOURS", 7*24)) * time.Hour,
		CookieSecure: getEnvBool("COOKIE_SECURE", true),

		IdentityURL: getEnv("IDENTITY_URL", "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"),
		AdminEmails: splitList(getEnv("ADMIN_EMAILS", "")),

		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "text"),
		SessionPurgeInterval: getEnvDuration("SESSION_PURGE_INTERVAL", time.Hour),
	}
}

// IsAdminEmail reports whether email is on the bootstrap admin list.
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
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
