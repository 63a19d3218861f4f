package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported row store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Row store configuration
	Store StoreConfig

	// Snapshot export configuration
	Export ExportConfig

	// Content input configuration
	Content ContentConfig

	// Preview server configuration
	Server ServerConfig

	// Logging configuration
	Log LogConfig
}

// StoreConfig holds row store settings
type StoreConfig struct {
	Driver       string
	Dir          string
	Name         string
	DatabaseURL  string // postgres only
	MaxOpenConns int
	PingTimeout  time.Duration
}

// ExportConfig holds snapshot export settings
type ExportConfig struct {
	Path   string
	Indent int
}

// ContentConfig holds content input settings
type ContentConfig struct {
	// Path is a YAML or JSON file of records. Empty means the embedded content.
	Path string
}

// ServerConfig holds preview server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Store: StoreConfig{
			Driver:       getEnv("STORE_DRIVER", DriverSQLite),
			Dir:          getEnv("STORE_DIR", "data"),
			Name:         getEnv("STORE_NAME", "content.db"),
			DatabaseURL:  getEnv("DATABASE_URL", ""),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 1),
			PingTimeout:  getDurationEnv("DB_PING_TIMEOUT", 5*time.Second),
		},
		Export: ExportConfig{
			Path:   getEnv("EXPORT_PATH", filepath.Join("data", "articles.json")),
			Indent: getIntEnv("EXPORT_INDENT", 2),
		},
		Content: ContentConfig{
			Path: getEnv("CONTENT_PATH", ""),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Dir == "" {
			return fmt.Errorf("STORE_DIR is required")
		}
		if c.Store.Name == "" {
			return fmt.Errorf("STORE_NAME is required")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want %s or %s)", c.Store.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Export.Path == "" {
		return fmt.Errorf("EXPORT_PATH is required")
	}
	if c.Export.Indent < 0 {
		return fmt.Errorf("EXPORT_INDENT must not be negative")
	}
	return nil
}

// Path returns the row store file path (sqlite only)
func (c *StoreConfig) Path() string {
	return filepath.Join(c.Dir, c.Name)
}

// GetDSN returns the driver-specific connection string
func (c *StoreConfig) GetDSN() string {
	if c.Driver == DriverPostgres {
		return c.DatabaseURL
	}
	return "file:" + c.Path() + "?_pragma=busy_timeout(5000)"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
