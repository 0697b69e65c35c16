package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend  string
	DatabaseURL  string
	SQLiteDBPath string
	SeedDemoData bool

	// Auth
	JWTSecret string

	// Local wall clock for reports
	Timezone string

	// LLM gateway for slip reading
	LLMGatewayURL string
	LLMModel      string
	LLMAPIKey     string
	SlipCacheTTL  time.Duration

	// AMQP, empty URL disables publication
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Firebase Cloud Messaging
	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string

	// Google Sheets export
	GoogleSheetsCredentialsBase64 string
	GoogleSpreadsheetID           string
	GoogleSheetName               string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:  getEnv("DATA_BACKEND", BackendPostgres),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/motoboy.db"),
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),

		JWTSecret: getEnv("APP_JWT_SECRET", ""),
		Timezone:  getEnv("TIMEZONE", "America/Sao_Paulo"),

		LLMGatewayURL: getEnv("LLM_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		LLMModel:      getEnv("LLM_MODEL", "google/gemini-2.5-flash"),
		LLMAPIKey:     getEnv("LLM_API_KEY", getEnv("LOVABLE_API_KEY", "")),
		SlipCacheTTL:  getEnvDuration("SLIP_CACHE_TTL", 10*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "motoboy"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "shift_exports"),

		FirebaseCredentialsBase64: getEnv("FIREBASE_CREDENTIALS_BASE64", ""),
		FirebaseCredentialsFile:   getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		GoogleSheetsCredentialsBase64: getEnv("GOOGLE_SHEETS_CREDENTIALS_BASE64", ""),
		GoogleSpreadsheetID:           getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:               getEnv("GOOGLE_SHEET_NAME", "Turnos"),
	}
}

// Location resolves Timezone, falling back to UTC when it cannot be loaded
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate checks the server configuration and reports every problem at once
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when using postgres backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s %s]",
			c.DataBackend, BackendPostgres, BackendSQLite, BackendMemory))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "APP_JWT_SECRET is required")
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if c.SlipCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid slip cache TTL %v: must not be negative", c.SlipCacheTTL))
	}

	errors = append(errors, c.validateAMQP()...)

	return combine(errors)
}

// ValidateExportWorker checks what the spreadsheet export worker needs
func (c *Config) ValidateExportWorker() error {
	var errors []string
	if c.AMQPURL == "" {
		errors = append(errors, "AMQP_URL is required for the export worker")
	}
	errors = append(errors, c.validateAMQP()...)

	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when using postgres backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("export worker needs a shared database, got backend '%s'", c.DataBackend))
	}

	if c.GoogleSpreadsheetID == "" {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required for the export worker")
	}
	if c.GoogleSheetName == "" {
		errors = append(errors, "GOOGLE_SHEET_NAME is required for the export worker")
	}
	if c.GoogleSheetsCredentialsBase64 == "" {
		errors = append(errors, "GOOGLE_SHEETS_CREDENTIALS_BASE64 is required for the export worker")
	}
	return combine(errors)
}

func (c *Config) validateAMQP() []string {
	if c.AMQPURL == "" {
		return nil
	}
	var errors []string
	if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
	} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
		errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
	}
	if c.AMQPExchange == "" {
		errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
	}
	if c.AMQPQueue == "" {
		errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
	}
	return errors
}

func combine(errors []string) error {
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// DSN is the connection string for the selected SQL backend
func (c *Config) DSN() string {
	if c.DataBackend == BackendSQLite {
		return c.SQLiteDBPath
	}
	return c.DatabaseURL
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
