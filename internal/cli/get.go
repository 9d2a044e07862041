package cli

import (
	"database/sql"
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/flextable/internal/record"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	One bool
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get [field=value ...]",
		Short: "Fetch records matching the given fields",
		Long: `Fetch records whose columns equal the given values, ordered by
insertion. With no fields every record is returned. Matching on a
column that does not exist yields no records.

Example:
  flextable --db people.db --table people get name=bob
  flextable --db people.db --table people get --one name=bob`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.One, "one", false, "return exactly one record, failing if there is none")

	return cmd
}

func runGet(opts *GetOptions, args []string, cmd *cobra.Command) error {
	matching, err := parseFields(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}

	tbl, err := openTable(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.One {
		rec, err := tbl.GetOne(cmd.Context(), matching)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitFailure, "no matching record")
		}
		if err != nil {
			return WrapExitError(ExitFailure, "get failed", err)
		}
		return formatter.Records([]record.Record{rec})
	}

	rows, err := tbl.Get(cmd.Context(), matching)
	if err != nil {
		return WrapExitError(ExitFailure, "get failed", err)
	}
	if rows == nil {
		return formatter.Records(nil)
	}
	defer rows.Close()

	recs, err := rows.All()
	if err != nil {
		return WrapExitError(ExitFailure, "get failed", err)
	}
	return formatter.Records(recs)
}
