package cli

import (
	"fmt"
	"os"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/app"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/config"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/logging"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// RootConfig holds the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	EnvFile    string
	StoreType  string
	StorePath  string
	LogLevel   string
}

// Load resolves the configuration and applies flag overrides on top of it.
func (rc *RootConfig) Load() (*config.Config, error) {
	cfg, err := config.Load(rc.ConfigPath, rc.EnvFile)
	if err != nil {
		return nil, err
	}
	if rc.StoreType != "" {
		cfg.Store.Type = rc.StoreType
	}
	if rc.StorePath != "" {
		cfg.Store.Path = rc.StorePath
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Build loads the configuration and wires the application.
func (rc *RootConfig) Build(cmd *cobra.Command) (*app.App, error) {
	cfg, err := rc.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	return app.Build(cmd.Context(), cfg, log)
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Profit distribution tracker",
		Long: `Tracker records daily profit/loss entries and the profit distributed
each day, and reports cumulative loss, net profit and per-person shares.

Records live in a CSV file by default (profit_data.csv); SQLite and
PostgreSQL stores are available through --store or the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to YAML or JSON config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.EnvFile, "env-file", "", "Path to .env file (default ./.env if present)")
	cmd.PersistentFlags().StringVar(&rc.StoreType, "store", "", "Store type: csv|memory|sqlite|postgres")
	cmd.PersistentFlags().StringVar(&rc.StorePath, "store-path", "", "CSV or SQLite store path")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.AddCommand(
		newServeCmd(rc),
		newAddCmd(rc),
		newListCmd(rc),
		newDeleteCmd(rc),
		newSummaryCmd(rc),
		newStatementCmd(rc),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tracker version %s\n", version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
