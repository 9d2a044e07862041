package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a raw SQL statement against the database",
		Long: `Run one SQL statement. SELECT, WITH and PRAGMA statements print
their rows; anything else reports the number of rows affected.

The statement runs on the same connection settings as the other
commands, including the pragmas applied at open.

Example:
  flextable --db people.db --table people query 'SELECT count(*) AS n FROM "people"'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runQuery(opts *RootOptions, stmt string, cmd *cobra.Command) error {
	tbl, err := openTable(opts)
	if err != nil {
		return err
	}
	defer closeTable(tbl)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if returnsRows(stmt) {
		rows, err := tbl.Query(cmd.Context(), stmt)
		if err != nil {
			return WrapExitError(ExitFailure, "query failed", err)
		}
		defer rows.Close()

		recs, err := rows.All()
		if err != nil {
			return WrapExitError(ExitFailure, "query failed", err)
		}
		return formatter.Records(recs)
	}

	n, err := tbl.Exec(cmd.Context(), stmt)
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return formatter.Success(map[string]any{"rows_affected": n})
}

// returnsRows reports whether a statement produces a result set.
func returnsRows(stmt string) bool {
	head := strings.ToUpper(strings.TrimSpace(stmt))
	for _, kw := range []string{"SELECT", "WITH", "PRAGMA", "EXPLAIN"} {
		if strings.HasPrefix(head, kw) {
			return true
		}
	}
	return false
}
