package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [column ...]",
		Short: "Create single-column indexes",
		Long: `Create an index on each named column. With no arguments every
column of the table is indexed. Existing indexes are left alone.

Example:
  flextable --db people.db --table people index name
  flextable --db people.db --table people index`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runIndex(opts *RootOptions, args []string, cmd *cobra.Command) error {
	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	ctx := cmd.Context()
	if len(args) == 0 {
		if err := tbl.IndexAll(ctx); err != nil {
			return WrapExitError(ExitFailure, "index failed", err)
		}
	} else {
		for _, col := range args {
			if err := tbl.Index(ctx, col); err != nil {
				return WrapExitError(ExitFailure, "index failed", err)
			}
			slog.Debug("index created", "table", opts.Table, "column", col)
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success("indexed")
}

// NewReindexCommand creates the reindex command.
func NewReindexCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild every column index from scratch",
		Long: `Drop every column index, recreate them, and refresh the planner
statistics. Useful after heavy churn, or after a bulk load done
without --reindex.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(rootOpts, cmd)
		},
	}

	return cmd
}

func runReindex(opts *RootOptions, cmd *cobra.Command) error {
	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	ctx := cmd.Context()
	if err := tbl.DropIndexAll(ctx); err != nil {
		return WrapExitError(ExitFailure, "reindex failed", err)
	}
	if err := tbl.IndexAll(ctx); err != nil {
		return WrapExitError(ExitFailure, "reindex failed", err)
	}
	if err := tbl.Analyze(ctx); err != nil {
		return WrapExitError(ExitFailure, "reindex failed", err)
	}
	slog.Debug("indexes rebuilt", "table", opts.Table)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success("reindexed")
}

// NewDropIndexCommand creates the drop-index command.
func NewDropIndexCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drop-index [column ...]",
		Short: "Drop single-column indexes",
		Long: `Drop the index on each named column. With no arguments every
column index of the table is dropped. Missing indexes are ignored.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDropIndex(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runDropIndex(opts *RootOptions, args []string, cmd *cobra.Command) error {
	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	ctx := cmd.Context()
	if len(args) == 0 {
		if err := tbl.DropIndexAll(ctx); err != nil {
			return WrapExitError(ExitFailure, "drop-index failed", err)
		}
	} else {
		for _, col := range args {
			if err := tbl.DropIndex(ctx, col); err != nil {
				return WrapExitError(ExitFailure, "drop-index failed", err)
			}
		}
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success("dropped")
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Refresh the query planner statistics",
		Long: `Run ANALYZE on the table so the query planner picks indexes
well. Worth doing after a bulk load or a reindex.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, cmd)
		},
	}

	return cmd
}

func runAnalyze(opts *RootOptions, cmd *cobra.Command) error {
	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	if err := tbl.Analyze(cmd.Context()); err != nil {
		return WrapExitError(ExitFailure, "analyze failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success("analyzed")
}
