package cli

import (
	"github.com/spf13/cobra"
)

// UpsertOptions holds flags for the upsert command.
type UpsertOptions struct {
	*RootOptions
	Match []string
	Set   []string
}

// NewUpsertCommand creates the upsert command.
func NewUpsertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpsertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "upsert --match field=value --set field=value",
		Short: "Update matching records or insert a new one",
		Long: `Update every record matching the --match fields, or insert the
--set fields as a new record when nothing matches. The check and the
write happen inside one exclusive transaction, so two racing upserts
of the same key leave a single record.

The inserted record carries only the --set fields; repeat the key
fields under --set if the new record should be found by them later.

Example:
  flextable --db people.db --table people upsert --match name=bob --set name=bob --set color=blue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpsert(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Match, "match", nil, "field=value to match on (repeatable, required)")
	cmd.Flags().StringArrayVar(&opts.Set, "set", nil, "field=value to write (repeatable, required)")
	_ = cmd.MarkFlagRequired("match")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func runUpsert(opts *UpsertOptions, cmd *cobra.Command) error {
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

	if err := tbl.Upsert(cmd.Context(), matching, rec); err != nil {
		return WrapExitError(ExitFailure, "upsert failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return formatter.Success(map[string]any{"upserted": 1})
}
