package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Match []string
	Set   []string
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update --match field=value --set field=value",
		Short: "Update records matching the given fields",
		Long: `Update every record matching the --match fields, assigning the
--set fields. New columns named by --set are added first. With no
--match fields every record is updated.

Example:
  flextable --db people.db --table people update --match name=bob --set color=blue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Match, "match", nil, "field=value to match on (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "field=value to assign (repeatable, required)")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func runUpdate(opts *UpdateOptions, cmd *cobra.Command) error {
	matching, err := parseFields(opts.Match)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --match", err)
	}
	rec, err := parseFields(opts.Set)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --set", err)
	}

	tbl, err := openTable(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	n, err := tbl.Update(cmd.Context(), matching, rec)
	if err != nil {
		return WrapExitError(ExitFailure, "update failed", err)
	}
	slog.Debug("records updated", "table", opts.Table, "count", n)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(map[string]any{"updated": n})
}
