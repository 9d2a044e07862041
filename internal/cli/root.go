package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/flextable/internal/table"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Database string
	Table    string

	IndexAllColumns bool
	FastAndUnsafe   bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the flextable CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "flextable",
		Short: "Schema-flexible SQLite record store",
		Long: `flextable stores free-form records in a SQLite table, adding
columns automatically as new fields appear.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.PersistentFlags().StringVar(&opts.Table, "table", "", "table name (required)")
	cmd.PersistentFlags().BoolVar(&opts.IndexAllColumns, "index-all-columns", false, "index every newly added column")
	cmd.PersistentFlags().BoolVar(&opts.FastAndUnsafe, "fast-and-unsafe", false, "disable journal and fsync (bulk loads only)")
	_ = cmd.MarkPersistentFlagRequired("db")
	_ = cmd.MarkPersistentFlagRequired("table")

	// Add subcommands
	cmd.AddCommand(NewInsertCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewUpsertCommand(opts))
	cmd.AddCommand(NewLoadCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))
	cmd.AddCommand(NewReindexCommand(opts))
	cmd.AddCommand(NewDropIndexCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openTable opens the table named by the global flags.
func openTable(opts *RootOptions) (*table.Table, error) {
	tbl, err := table.Open(opts.Database, opts.Table, table.Options{
		IndexAllColumns: opts.IndexAllColumns,
		FastAndUnsafe:   opts.FastAndUnsafe,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open table", err)
	}
	return tbl, nil
}

func closeTable(tbl *table.Table) {
	if err := tbl.Close(); err != nil {
		slog.Error("error closing table", "error", err)
	}
}
