package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, StoreCSV, cfg.Store.Type)
	assert.Equal(t, "profit_data.csv", cfg.Store.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Events.Brokers)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.Server.ShutdownDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "memory store needs no path",
			mutate:  func(c *Config) { c.Store = StoreConfig{Type: StoreMemory} },
			wantErr: false,
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
			errMsg:  "server.addr is required",
		},
		{
			name:    "bad shutdown timeout",
			mutate:  func(c *Config) { c.Server.ShutdownTimeout = "soon" },
			wantErr: true,
			errMsg:  "server.shutdown_timeout",
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.Store.Type = "excel" },
			wantErr: true,
			errMsg:  "store.type must be one of",
		},
		{
			name:    "csv without path",
			mutate:  func(c *Config) { c.Store.Path = "" },
			wantErr: true,
			errMsg:  "store.path required for csv store",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Store = StoreConfig{Type: StorePostgres} },
			wantErr: true,
			errMsg:  "store.dsn required",
		},
		{
			name: "brokers without topic",
			mutate: func(c *Config) {
				c.Events = EventsConfig{Brokers: []string{"localhost:9092"}}
			},
			wantErr: true,
			errMsg:  "events.topic required",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Store = StoreConfig{Type: StoreSQLite, Path: "ledger.db"}
			cfg.Events.Brokers = []string{"kafka-1:9092", "kafka-2:9092"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: memory\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Type)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "ledger_changed", cfg.Events.Topic)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"TRACKER_ADDR":       ":9090",
		"TRACKER_STORE_TYPE": "postgres",
		"DATABASE_URL":       "postgres://localhost/tracker",
		"KAFKA_BROKERS":      "a:9092, b:9092,",
		"LOG_LEVEL":          "debug",
	}

	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, StorePostgres, cfg.Store.Type)
	assert.Equal(t, "postgres://localhost/tracker", cfg.Store.DSN)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "profit_data.csv", cfg.Store.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	storePath := filepath.Join(dir, "ledger.csv")
	require.NoError(t, os.WriteFile(envFile, []byte("TRACKER_STORE_PATH="+storePath+"\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TRACKER_STORE_PATH") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, storePath, cfg.Store.Path)

	_, err = Load("", filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
