// Package compiler is the entry point of dbtype code generation: it loads Go
// packages, validates their annotated declarations and writes the
// generated files.
//
//	err := compiler.Generate(ctx, []string{"./..."},
//		gen.WithBackends(dialect.Postgres),
//		gen.WithFeatures(gen.FeatureJSON),
//	)
package compiler

import (
	"context"

	"go.uber.org/zap"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/compiler/gen/sql"
	"github.com/syssam/dbtype/compiler/load"
)

// LoadGraph loads the packages matching patterns and builds their validated
// graph. Diagnostics are returned as gen.Diagnostics.
func LoadGraph(ctx context.Context, patterns []string, opts ...gen.Option) (*gen.Graph, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	loader := &load.Config{BuildFlags: cfg.BuildFlags, Output: cfg.Output}
	pkgs, err := loader.Load(ctx, patterns...)
	if err != nil {
		return nil, err
	}
	cfg.Log().Debug("packages loaded", zap.Strings("patterns", patterns), zap.Int("packages", len(pkgs)))
	return gen.NewGraph(cfg, pkgs...)
}

// Generate generates the files of the packages matching patterns. Nothing is
// written when any declaration is invalid.
func Generate(ctx context.Context, patterns []string, opts ...gen.Option) error {
	g, err := LoadGraph(ctx, patterns, opts...)
	if err != nil {
		return err
	}
	return sql.Generate(ctx, g)
}

// Check returns the generated files of the packages matching patterns that
// are missing or stale on disk.
func Check(ctx context.Context, patterns []string, opts ...gen.Option) ([]*gen.File, error) {
	g, err := LoadGraph(ctx, patterns, opts...)
	if err != nil {
		return nil, err
	}
	return sql.Check(ctx, g)
}
