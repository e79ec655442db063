package cli

import (
	"fmt"
	"strconv"

	"github.com/sheikh-saqib/profit-distribution-tracker/internal/models"
	"github.com/sheikh-saqib/profit-distribution-tracker/internal/report"
	"github.com/spf13/cobra"
)

func newServeCmd(rc *RootConfig) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web form and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.Build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr != "" {
				a.Config.Server.Addr = addr
			}
			return a.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newAddCmd(rc *RootConfig) *cobra.Command {
	var date, pl, dist string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a daily record",
		Long: `Append one record to the ledger.

Example:
  tracker add --date 2024-06-01 --pl 1000 --distributed 600`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := models.NewRecord(date, pl, dist)
			if err != nil {
				return err
			}

			a, err := rc.Build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.Engine.Append(cmd.Context(), rec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Record saved (%d records)\n", st.Ledger.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", models.Today().String(), "business day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pl, "pl", "0", "day's profit/loss")
	cmd.Flags().StringVar(&dist, "distributed", "0", "profit distributed that day")
	return cmd
}

func newListCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List records newest first with their delete indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.Build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.Engine.View(cmd.Context())
			if err != nil {
				return err
			}
			if st.Ledger.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), report.EmptyMessage)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), report.RecordsTable(st.Ledger))
			return nil
		},
	}
}

func newDeleteCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>...",
		Short: "Delete records by their index in `tracker list`",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indices := make([]int, 0, len(args))
			for _, arg := range args {
				i, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("index %q: %w", arg, err)
				}
				indices = append(indices, i)
			}

			a, err := rc.Build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.Engine.Delete(cmd.Context(), indices)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted selected rows (%d records left)\n", st.Ledger.Len())
			return nil
		},
	}
}

func newSummaryCmd(rc *RootConfig) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show metrics, statement and records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.Build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.Engine.View(cmd.Context())
			if err != nil {
				return err
			}

			md := report.Markdown(st, a.Config.Statement.Title)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := report.Terminal(md, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown instead of rendering it")
	cmd.Flags().IntVar(&width, "width", 100, "word wrap width")
	return cmd
}

func newStatementCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "statement",
		Short: "Print the copyable business statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rc.Build(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.Engine.View(cmd.Context())
			if err != nil {
				return err
			}
			if st.Summary == nil {
				return models.ErrEmptyLedger
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Statement(a.Config.Statement.Title, *st.Summary))
			return nil
		},
	}
}
