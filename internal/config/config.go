package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port           string
	UploadMaxBytes int64

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Categorization
	RulesPath string

	// Worker
	InboxDir         string
	ArchiveBatchSize int
	ArchiveInterval  time.Duration

	// Google Sheets archive
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Backend selection
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8081"),
		UploadMaxBytes: getEnvInt64("UPLOAD_MAX_BYTES", 10<<20),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/financas.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "financas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "statement_imported"),

		RulesPath: getEnv("RULES_PATH", ""),

		InboxDir:         getEnv("INBOX_DIR", ""),
		ArchiveBatchSize: getEnvInt("ARCHIVE_BATCH_SIZE", 10),
		ArchiveInterval:  getEnvDuration("ARCHIVE_INTERVAL", 30*time.Second),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.UploadMaxBytes < 1 {
		errors = append(errors, fmt.Sprintf("invalid upload limit %d: must be at least 1 byte", c.UploadMaxBytes))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
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
	}

	// Validate rules file if provided
	if c.RulesPath != "" {
		if _, err := os.Stat(c.RulesPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("rules file does not exist: %s", c.RulesPath))
		}
	}

	// Validate inbox directory if provided
	if c.InboxDir != "" {
		if info, err := os.Stat(c.InboxDir); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("inbox directory does not exist: %s", c.InboxDir))
		} else if err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("inbox path is not a directory: %s", c.InboxDir))
		}
	}

	// Validate worker configuration
	if c.ArchiveBatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid archive batch size %d: must be at least 1", c.ArchiveBatchSize))
	} else if c.ArchiveBatchSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid archive batch size %d: must be at most 1000", c.ArchiveBatchSize))
	}

	if c.ArchiveInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid archive interval %v: must be at least 1 second", c.ArchiveInterval))
	} else if c.ArchiveInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid archive interval %v: must be at most 24 hours", c.ArchiveInterval))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ArchiveEnabled reports whether a Google Sheets archive target is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
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
