package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend API
	Port        string
	DBType      string
	PostgresURL string
	MongoURL    string
	MongoDB     string
	SQLitePath  string
	CORSOrigins []string

	// Ledger UI
	LedgerPort    string
	APIURL        string
	HTTPTimeout   time.Duration
	DateFormat    string
	CompanyName   string
	ChromeTimeout time.Duration
	SecureCookie  bool

	// Export archive (Cloudflare R2)
	R2Bucket          string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string

	LogLevel string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBType:      getEnv("DB_TYPE", "postgres"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		MongoDB:     getEnv("MONGO_DB", "roadwaysledger"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/ledger.db"),
		CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LedgerPort:    getEnv("LEDGER_PORT", "8090"),
		APIURL:        getEnv("LEDGER_API_URL", "http://localhost:8080"),
		HTTPTimeout:   getEnvDuration("LEDGER_HTTP_TIMEOUT", 30*time.Second),
		DateFormat:    getEnv("LEDGER_DATE_FORMAT", "02/01/2006"),
		CompanyName:   getEnv("LEDGER_COMPANY_NAME", "North East Roadways"),
		ChromeTimeout: getEnvDuration("LEDGER_PDF_TIMEOUT", 30*time.Second),
		SecureCookie:  getEnvBool("LEDGER_COOKIE_SECURE", false),

		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// ValidateServer checks the settings cmd/server depends on.
func (c *Config) ValidateServer() error {
	var errs []string
	if err := validatePort(c.Port); err != nil {
		errs = append(errs, err.Error())
	}
	switch c.DBType {
	case "postgres":
		if c.PostgresURL == "" {
			errs = append(errs, "POSTGRES_URL is required when DB_TYPE=postgres")
		}
	case "mongo":
		if c.MongoURL == "" {
			errs = append(errs, "MONGO_URL is required when DB_TYPE=mongo")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required when DB_TYPE=sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("DB_TYPE %q not supported: must be postgres, mongo or sqlite", c.DBType))
	}
	return joinErrors(errs)
}

// ValidateLedger checks the settings cmd/ledger depends on.
func (c *Config) ValidateLedger() error {
	var errs []string
	if err := validatePort(c.LedgerPort); err != nil {
		errs = append(errs, err.Error())
	}
	if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid LEDGER_API_URL %q", c.APIURL))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, "LEDGER_HTTP_TIMEOUT must be positive")
	}
	if c.DateFormat == "" {
		errs = append(errs, "LEDGER_DATE_FORMAT cannot be empty")
	}
	if c.R2Bucket != "" && (c.R2AccountID == "" || c.R2AccessKeyID == "" || c.R2SecretAccessKey == "") {
		errs = append(errs, "R2_ACCOUNT_ID, R2_ACCESS_KEY_ID and R2_SECRET_ACCESS_KEY are required when R2_BUCKET is set")
	}
	return joinErrors(errs)
}

// ArchiveEnabled reports whether exports are copied to R2.
func (c *Config) ArchiveEnabled() bool {
	return c.R2Bucket != ""
}

func validatePort(p string) error {
	port, err := strconv.Atoi(p)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", p)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

func joinErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
