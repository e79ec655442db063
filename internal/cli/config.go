package cli

import (
	"fmt"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage tracker configuration files.

Examples:
  tracker config init --output tracker.yaml
  tracker config validate --file tracker.yaml`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "tracker.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Store: %s %s%s\n", cfg.Store.Type, cfg.Store.Path, redact(cfg.Store.DSN))
			fmt.Fprintf(out, "  Server: %s\n", cfg.Server.Addr)
			if len(cfg.Events.Brokers) > 0 {
				fmt.Fprintf(out, "  Events: kafka %v topic %s\n", cfg.Events.Brokers, cfg.Events.Topic)
			}
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func redact(dsn string) string {
	if dsn == "" {
		return ""
	}
	return "(dsn set)"
}
