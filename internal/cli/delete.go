package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete field=value [field=value ...]",
		Short: "Delete records matching the given fields",
		Long: `Delete every record whose columns equal the given values.

At least one field is required; wiping a table takes an explicit
"query" invocation instead.

Example:
  flextable --db people.db --table people delete name=bob`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, args []string, cmd *cobra.Command) error {
	matching, err := parseFields(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}

	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	n, err := tbl.Delete(cmd.Context(), matching)
	if err != nil {
		return WrapExitError(ExitFailure, "delete failed", err)
	}
	slog.Debug("records deleted", "table", opts.Table, "count", n)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(map[string]any{"deleted": n})
}
