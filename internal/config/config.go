package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store types accepted in store.type.
const (
	StoreCSV      = "csv"
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is the complete tracker configuration.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Statement StatementConfig `json:"statement" yaml:"statement"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// ServerConfig contains HTTP listener parameters
type ServerConfig struct {
	Addr            string `json:"addr" yaml:"addr"`
	ShutdownTimeout string `json:"shutdown_timeout" yaml:"shutdown_timeout"` // e.g. "10s"
}

// ShutdownDuration parses ShutdownTimeout, defaulting to ten seconds.
func (s ServerConfig) ShutdownDuration() (time.Duration, error) {
	if s.ShutdownTimeout == "" {
		return 10 * time.Second, nil
	}
	return time.ParseDuration(s.ShutdownTimeout)
}

// StoreConfig selects where the ledger lives.
type StoreConfig struct {
	Type string `json:"type" yaml:"type"` // csv, memory, sqlite or postgres
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	DSN  string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// EventsConfig enables publishing ledger changes to Kafka when brokers are set.
type EventsConfig struct {
	Brokers []string `json:"brokers,omitempty" yaml:"brokers,omitempty"`
	Topic   string   `json:"topic" yaml:"topic"`
}

// StatementConfig sets the heading of the shareable statement.
type StatementConfig struct {
	Title string `json:"title" yaml:"title"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // console or json
}

// Default returns a configuration that keeps the ledger in ./profit_data.csv.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
		},
		Store: StoreConfig{
			Type: StoreCSV,
			Path: "profit_data.csv",
		},
		Events: EventsConfig{
			Topic: "ledger_changed",
		},
		Statement: StatementConfig{
			Title: "*Futures Business statement*(nifty)",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, the optional file at path,
// the optional env file and finally the process environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs without overriding variables already set.
// A missing default .env is not an error; a missing explicit file is.
func loadEnvFile(envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}
	err := godotenv.Load(envFile)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&c.Server.Addr, "TRACKER_ADDR")
	set(&c.Store.Type, "TRACKER_STORE_TYPE")
	set(&c.Store.Path, "TRACKER_STORE_PATH")
	set(&c.Store.DSN, "DATABASE_URL")
	set(&c.Events.Topic, "KAFKA_TOPIC")
	set(&c.Statement.Title, "TRACKER_STATEMENT_TITLE")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Log.Format, "LOG_FORMAT")

	if v := getenv("KAFKA_BROKERS"); v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Events.Brokers = brokers
	}
}

// LoadFromFile loads configuration from a YAML or JSON file.
// Fields the file leaves out keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML or JSON depending on the extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if _, err := c.Server.ShutdownDuration(); err != nil {
		return fmt.Errorf("server.shutdown_timeout: %w", err)
	}
	switch c.Store.Type {
	case StoreCSV, StoreSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path required for %s store", c.Store.Type)
		}
	case StorePostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn required for postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("store.type must be one of csv, memory, sqlite, postgres")
	}
	if len(c.Events.Brokers) > 0 && c.Events.Topic == "" {
		return fmt.Errorf("events.topic required when brokers are set")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'console' or 'json'")
	}
	return nil
}
