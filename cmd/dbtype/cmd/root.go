// Package cmd holds the cobra commands of dbtype.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/dbtype/compiler"
	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/dialect"
	"github.com/syssam/dbtype/internal/logger"
)

// Flag names. They double as viper keys.
const (
	flagBackend = "backend"
	flagFeature = "feature"
	flagOutput  = "output"
	flagWorkers = "workers"
	flagTags    = "tags"
	flagVerbose = "verbose"
	flagLogJSON = "log-json"
)

var (
	// ErrInvalid is returned when any declaration is invalid. The
	// diagnostics themselves are printed to stderr.
	ErrInvalid = errors.New("invalid declarations")
	// ErrStale is returned by check when generated files are out of date.
	ErrStale = errors.New("generated files are out of date")
)

// NewRootCmd returns the dbtype command. Each call gets its own flag set and
// viper instance.
func NewRootCmd() *cobra.Command {
	v := newViper()
	root := &cobra.Command{
		Use:   "dbtype [packages]",
		Short: "Generate SQL mappings for Go enums and typed identifiers",
		Long: `Generate database/sql mappings for Go types annotated with dbtype directives.

Enums are integer or string types with a constant block:

  //dbtype:enum backends=postgres pg-type=subscription_status json
  type Status int

Typed identifiers are single-field structs:

  //dbtype:id backends=postgres,mysql
  type AccountID struct{ id uuid.UUID }

Each package gets one generated file, dbtype_gen.go by default. Nothing is
written when any declaration is invalid.

Environment:
  DBTYPE_BACKENDS   comma-separated backends (same as --backend)
  DBTYPE_FEATURES   comma-separated features (same as --feature)

Examples:
  dbtype --backend postgres ./...
  dbtype --backend postgres,mysql --feature json,typed-uuid ./...
  dbtype check ./...
  dbtype watch ./internal/...`,
		// Package patterns are not subcommands.
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Initialize(v.GetBool(flagLogJSON), v.GetBool(flagVerbose)); err != nil {
				return errors.Wrap(err, "initializing logger")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := compiler.Generate(cmd.Context(), args, options(v)...)
			return report(cmd.ErrOrStderr(), err)
		},
	}

	flags := root.PersistentFlags()
	flags.StringSliceP(flagBackend, "b", nil, "Enabled backends: "+strings.Join(dialect.Backends, ", "))
	flags.StringSliceP(flagFeature, "f", nil, "Enabled features: "+strings.Join(featureNames(), ", "))
	flags.StringP(flagOutput, "o", "", "Name of the generated file in each package (default dbtype_gen.go)")
	flags.Int(flagWorkers, 0, "Packages rendered in parallel (default GOMAXPROCS)")
	flags.StringSlice(flagTags, nil, "Build tags used when loading packages")
	flags.BoolP(flagVerbose, "v", false, "Log per-package events")
	flags.Bool(flagLogJSON, false, "Log JSON instead of text")
	// Flags are registered above, so binding cannot fail.
	_ = v.BindPFlags(flags)

	root.AddCommand(newCheckCmd(v), newWatchCmd(v))
	return root
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("DBTYPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(flagBackend, "DBTYPE_BACKENDS")
	_ = v.BindEnv(flagFeature, "DBTYPE_FEATURES")
	return v
}

// options resolves the generator options from flags and environment.
func options(v *viper.Viper) []gen.Option {
	opts := []gen.Option{
		gen.WithBackends(list(v, flagBackend)...),
		gen.WithFeatureNames(list(v, flagFeature)...),
		gen.WithWorkers(v.GetInt(flagWorkers)),
		gen.WithLogger(logger.Desugar()),
	}
	if out := v.GetString(flagOutput); out != "" {
		opts = append(opts, gen.WithOutput(out))
	}
	if tags := list(v, flagTags); len(tags) > 0 {
		opts = append(opts, gen.WithBuildFlags("-tags="+strings.Join(tags, ",")))
	}
	return opts
}

// list returns the comma- or space-separated values of key. Environment
// values arrive as one string, flags as a slice.
func list(v *viper.Viper, key string) []string {
	var out []string
	for _, s := range v.GetStringSlice(key) {
		out = append(out, strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })...)
	}
	return out
}

func featureNames() []string {
	names := make([]string, len(gen.AllFeatures))
	for i, f := range gen.AllFeatures {
		names[i] = f.Name
	}
	return names
}

// report prints every diagnostic of err to w and returns a summary error
// carrying a hint.
func report(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	ds, ok := gen.AsDiagnostics(err)
	if !ok {
		if gen.IsConfigError(err) {
			return errors.WithHint(err, "run dbtype --help for the accepted values")
		}
		return err
	}
	for _, d := range ds {
		fmt.Fprintln(w, d)
	}
	err = errors.Mark(errors.Newf("%d invalid declaration(s)", len(ds)), ErrInvalid)
	switch {
	case len(ds.Of(gen.BackendNotEnabled)) > 0:
		return errors.WithHint(err, "enable the backend with --backend or DBTYPE_BACKENDS")
	case len(ds.Of(gen.CapabilityNotEnabled)) > 0:
		return errors.WithHint(err, "enable the feature with --feature or DBTYPE_FEATURES")
	}
	return err
}
