package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert [field=value ...]",
		Short: "Insert a record, adding columns as needed",
		Long: `Insert a single record into the table.

Fields that do not have a column yet get one, typed after the first
value stored in them. With no fields at all an empty row is inserted.

Example:
  flextable --db people.db --table people insert name=bob age=42`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsert(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runInsert(opts *RootOptions, args []string, cmd *cobra.Command) error {
	rec, err := parseFields(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}

	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	if err := tbl.Insert(cmd.Context(), rec); err != nil {
		return WrapExitError(ExitFailure, "insert failed", err)
	}
	slog.Debug("record inserted", "table", opts.Table, "fields", len(rec))

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(map[string]any{"inserted": 1})
}
