package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite3"
)

// Content sources
const (
	SourceStore = "store"
	SourceFiles = "files"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Content tree and source selection
	Content ContentConfig

	// Logging configuration
	Log LogConfig

	// Env is the deployment environment ("development", "production", ...)
	Env string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	Path         string // sqlite3 database file
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	QueryTimeout time.Duration // 0 disables the per-request deadline
}

// ContentConfig selects where content comes from
type ContentConfig struct {
	Source             string
	Dir                string
	CacheTTL           time.Duration // 0 disables the static collection cache
	SyncInterval       time.Duration // serve resyncs the tree into the store; 0 disables
	SearchDefaultLimit int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

var defaults = map[string]any{
	"port":                    "8080",
	"server_read_timeout":     30 * time.Second,
	"server_write_timeout":    30 * time.Second,
	"server_shutdown_timeout": 30 * time.Second,
	"db_driver":               DriverPostgres,
	"db_host":                 "localhost",
	"db_port":                 "5432",
	"db_user":                 "postgres",
	"db_password":             "postgres",
	"db_name":                 "olive_branch",
	"db_sslmode":              "disable",
	"db_path":                 "./data/content.db",
	"db_max_open_conns":       25,
	"db_max_idle_conns":       5,
	"db_max_lifetime":         5 * time.Minute,
	"db_query_timeout":        10 * time.Second,
	"content_source":          SourceStore,
	"content_dir":             "./content",
	"content_cache_ttl":       time.Duration(0),
	"sync_interval":           time.Duration(0),
	"search_default_limit":    20,
	"log_level":               "info",
	"log_format":              "json",
	"env":                     "production",
}

// Load reads configuration from defaults, an optional YAML config file and
// environment variables, in increasing precedence.
func Load(configFile string) (*Config, error) {
	return LoadFrom(viper.New(), configFile)
}

// LoadFrom is Load over a caller-supplied viper instance, so CLI flags bound
// to v take precedence over everything else.
func LoadFrom(v *viper.Viper, configFile string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("port"),
			ReadTimeout:     v.GetDuration("server_read_timeout"),
			WriteTimeout:    v.GetDuration("server_write_timeout"),
			ShutdownTimeout: v.GetDuration("server_shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("db_driver")),
			Host:         v.GetString("db_host"),
			Port:         v.GetString("db_port"),
			User:         v.GetString("db_user"),
			Password:     v.GetString("db_password"),
			Name:         v.GetString("db_name"),
			SSLMode:      v.GetString("db_sslmode"),
			Path:         v.GetString("db_path"),
			MaxOpenConns: v.GetInt("db_max_open_conns"),
			MaxIdleConns: v.GetInt("db_max_idle_conns"),
			MaxLifetime:  v.GetDuration("db_max_lifetime"),
			QueryTimeout: v.GetDuration("db_query_timeout"),
		},
		Content: ContentConfig{
			Source:             strings.ToLower(v.GetString("content_source")),
			Dir:                v.GetString("content_dir"),
			CacheTTL:           v.GetDuration("content_cache_ttl"),
			SyncInterval:       v.GetDuration("sync_interval"),
			SearchDefaultLimit: v.GetInt("search_default_limit"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		Env: v.GetString("env"),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Content.Source {
	case SourceStore, SourceFiles:
	default:
		return fmt.Errorf("CONTENT_SOURCE must be %q or %q, got %q", SourceStore, SourceFiles, c.Content.Source)
	}
	if c.Content.Source == SourceFiles && c.Content.Dir == "" {
		return errors.New("CONTENT_DIR is required when CONTENT_SOURCE=files")
	}
	if c.Content.SyncInterval < 0 {
		return errors.New("SYNC_INTERVAL must not be negative")
	}
	if c.Content.SearchDefaultLimit < 0 {
		return errors.New("SEARCH_DEFAULT_LIMIT must not be negative")
	}
	return c.Database.Validate()
}

// Validate checks the settings the selected driver needs
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverPgx:
		if c.Host == "" {
			return errors.New("DB_HOST is required")
		}
		if c.Name == "" {
			return errors.New("DB_NAME is required")
		}
	case DriverSQLite:
		if c.Path == "" {
			return errors.New("DB_PATH is required for sqlite3")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
	return nil
}

// Dialect returns the SQL dialect of the configured driver
func (c *DatabaseConfig) Dialect() string {
	if c.Driver == DriverSQLite {
		return DriverSQLite
	}
	return DriverPostgres
}

// GetDSN returns the connection string for the configured driver
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == DriverSQLite {
		return "file:" + c.Path + "?_busy_timeout=5000&_foreign_keys=on"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}
