package gen

import (
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/dialect"
)

// DefaultHeader is the header comment of generated files.
const DefaultHeader = "Code generated by dbtype. DO NOT EDIT."

// Config holds the build-level capability flags and generator settings.
// It is resolved once per run and read-only afterwards.
type Config struct {
	// Backends lists the enabled backends (dialect.Postgres, dialect.MySQL).
	Backends []string
	// Features lists the enabled feature-flags.
	Features []Feature
	// Header is the comment written at the top of each generated file.
	Header string
	// Output is the name of the generated file in each package.
	Output string
	// Workers bounds the number of packages rendered in parallel.
	Workers int
	// BuildFlags are passed to the go command when loading packages.
	BuildFlags []string
	// Logger receives per-package events. Nil means no logging.
	Logger *zap.Logger
}

// FeatureEnabled reports if the given feature name is enabled.
func (c *Config) FeatureEnabled(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	f, ok := FeatureByName(name)
	return ok && f.Default
}

// BackendEnabled reports if the given backend is enabled.
func (c *Config) BackendEnabled(name string) bool {
	return slices.Contains(c.Backends, name)
}

// Log returns the configured logger or a no-op logger.
func (c *Config) Log() *zap.Logger {
	if c == nil || c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithBackends enables backends. Duplicates are ignored.
func WithBackends(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if !dialect.Valid(name) {
				return NewConfigError("Backends", name, "unsupported backend; use "+strings.Join(dialect.Backends, " or "))
			}
			c.Backends = append(c.Backends, name)
		}
		c.Backends = dialect.Sort(c.Backends)
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name }) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithFeatureNames enables features by name, as given on the command line.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			if err := WithFeatures(f)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithOutput sets the name of the generated file, e.g. "dbtype_gen.go".
func WithOutput(name string) Option {
	return func(c *Config) error {
		switch {
		case name == "":
			return NewConfigError("Output", nil, "output file name cannot be empty")
		case filepath.Base(name) != name:
			return NewConfigError("Output", name, "output must be a file name, not a path")
		case filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go"):
			return NewConfigError("Output", name, "output must be a non-test .go file")
		}
		c.Output = name
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
// Zero means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithBuildFlags sets custom build flags for loading packages.
func WithBuildFlags(flags ...string) Option {
	return func(c *Config) error {
		c.BuildFlags = append(c.BuildFlags, flags...)
		return nil
	}
}

// WithLogger sets the logger receiving generation events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:  DefaultHeader,
		Output:  load.DefaultOutput,
		Workers: runtime.GOMAXPROCS(0),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
