package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/dbtype/compiler"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Check that generated files are up to date",
		Long: `Render every package in memory and compare the result with the files on disk.
Nothing is written.

Exit codes:
  0 - generated files are up to date
  1 - a declaration is invalid, or a file is missing or stale

Examples:
  dbtype check --backend postgres ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stale, err := compiler.Check(cmd.Context(), args, options(v)...)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			for _, f := range stale {
				state := "stale"
				if f.Remove {
					state = "obsolete"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Path, state)
			}
			if len(stale) > 0 {
				return errors.WithHint(
					errors.Wrapf(ErrStale, "%d file(s)", len(stale)),
					"run dbtype with the same flags to regenerate",
				)
			}
			return nil
		},
	}
}
