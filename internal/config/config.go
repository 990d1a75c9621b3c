package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Record sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port             string   `yaml:"port"`
	DBConn           string   `yaml:"db_conn"`
	LogLevel         string   `yaml:"log_level"`
	JWTSecret        string   `yaml:"jwt_secret"`
	TokenTTLMinutes  int      `yaml:"token_ttl_minutes"`
	RecordSource     string   `yaml:"record_source"`
	DataDir          string   `yaml:"data_dir"`
	EventsFile       string   `yaml:"events_file"`
	EventsFeedURL    string   `yaml:"events_feed_url"`
	LoansFile        string   `yaml:"loans_file"`
	PaymentsFile     string   `yaml:"payments_file"`
	CustomersFile    string   `yaml:"customers_file"`
	Timezone         string   `yaml:"timezone"`
	SMTPHost         string   `yaml:"smtp_host"`
	SMTPPort         string   `yaml:"smtp_port"`
	SMTPUsername     string   `yaml:"smtp_username"`
	SMTPPassword     string   `yaml:"smtp_password"`
	SenderEmail      string   `yaml:"sender_email"`
	DigestSchedule   string   `yaml:"digest_schedule"`
	DigestRecipients []string `yaml:"digest_recipients"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Port:            "8080",
		DBConn:          "host=localhost port=5432 user=postgres password=password dbname=customer360 sslmode=disable",
		LogLevel:        "INFO",
		JWTSecret:       "secret",
		TokenTTLMinutes: 20,
		RecordSource:    SourceFile,
		DataDir:         "data",
		EventsFile:      "communications.json",
		LoansFile:       "loans.json",
		PaymentsFile:    "payments.json",
		CustomersFile:   "customers.json",
		Timezone:        "Local",
		SMTPPort:        "587",
	}
}

// NewConfig loads configuration from .env, an optional YAML file named by CONFIG_FILE,
// and environment variables, in increasing order of precedence
func NewConfig() (*Config, error) {
	// A missing .env file is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBConn = getEnv("DB_CONN", cfg.DBConn)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.RecordSource = getEnv("RECORD_SOURCE", cfg.RecordSource)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.EventsFile = getEnv("EVENTS_FILE", cfg.EventsFile)
	cfg.EventsFeedURL = getEnv("EVENTS_FEED_URL", cfg.EventsFeedURL)
	cfg.LoansFile = getEnv("LOANS_FILE", cfg.LoansFile)
	cfg.PaymentsFile = getEnv("PAYMENTS_FILE", cfg.PaymentsFile)
	cfg.CustomersFile = getEnv("CUSTOMERS_FILE", cfg.CustomersFile)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnv("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = getEnv("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.SenderEmail = getEnv("SENDER_EMAIL", cfg.SenderEmail)
	cfg.DigestSchedule = getEnv("DIGEST_SCHEDULE", cfg.DigestSchedule)
	if v, ok := os.LookupEnv("DIGEST_RECIPIENTS"); ok {
		cfg.DigestRecipients = splitList(v)
	}
	if v, ok := os.LookupEnv("TOKEN_TTL_MINUTES"); ok {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %w", err)
		}
		cfg.TokenTTLMinutes = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and enumerations
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTLMinutes <= 0 {
		return fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", c.TokenTTLMinutes)
	}
	switch c.RecordSource {
	case SourceFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file record source")
		}
	case SourcePostgres:
		if c.DBConn == "" {
			return fmt.Errorf("DB_CONN is required for the postgres record source")
		}
	default:
		return fmt.Errorf("unknown RECORD_SOURCE %q", c.RecordSource)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.DigestSchedule != "" && len(c.DigestRecipients) == 0 {
		return fmt.Errorf("DIGEST_RECIPIENTS is required when DIGEST_SCHEDULE is set")
	}
	return nil
}

// TokenTTL returns the access token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Location resolves the configured timezone used for calendar windows
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DataPath joins a data file name onto DataDir
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
