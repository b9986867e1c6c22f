package gen

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RuntimePkg is the import path of the runtime support package.
const RuntimePkg = "github.com/syssam/dbtype"

// JenniferGenerator generates one file per package using Jennifer.
// Jennifer tracks imports and formats the output, so no goimports pass is
// needed.
type JenniferGenerator struct {
	graph   *Graph
	workers int

	// Dialect generator for the declaration and backend code.
	// Requires at least MinimalDialect; integration adapters are used when
	// the dialect is a full DialectGenerator.
	dialect      MinimalDialect
	integrations []IntegrationGenerator
}

// NewJenniferGenerator creates a new Jennifer-based generator.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/dbtype/compiler/gen/sql"
//
//	gen := gen.NewJenniferGenerator(graph)
//	gen.WithDialect(sql.NewDialect(gen))
//	gen.Generate(ctx)
func NewJenniferGenerator(g *Graph) *JenniferGenerator {
	workers := runtime.GOMAXPROCS(0)
	if g.Config != nil && g.Workers > 0 {
		workers = g.Workers
	}
	return &JenniferGenerator{graph: g, workers: workers}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithDialect sets the dialect generator.
// Integration support is detected via DialectGenerator.
func (g *JenniferGenerator) WithDialect(d MinimalDialect) *JenniferGenerator {
	if d != nil {
		g.dialect = d
		g.integrations = nil
		if dg, ok := d.(DialectGenerator); ok {
			g.integrations = dg.Integrations()
		}
	}
	return g
}

// Render renders the output file of every package in parallel. Packages
// without declarations yield a File marked for removal. Files are returned
// in package order. Generated methods that a declaration already declares by
// hand are returned as Diagnostics.
func (g *JenniferGenerator) Render(ctx context.Context) ([]*File, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Render()")
	}
	files := make([]*File, len(g.graph.Packages))
	conflicts := make([]Diagnostics, len(g.graph.Packages))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for i, p := range g.graph.Packages {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, ds, err := g.renderPackage(p)
			if err != nil {
				return err
			}
			files[i], conflicts[i] = f, ds
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	if err := slices.Concat(conflicts...).err(); err != nil {
		return nil, err
	}
	return files, nil
}

// Generate renders all packages and writes the files that changed.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	files, err := g.Render(ctx)
	if err != nil {
		return err
	}
	log := g.graph.Log()
	for _, f := range files {
		changed, err := f.Write()
		if err != nil {
			return err
		}
		if changed {
			log.Info("file updated", zap.String("path", f.Path), zap.Bool("removed", f.Remove))
		}
	}
	return nil
}

// Check renders all packages and returns the files whose content on disk
// differs from the rendered output.
func (g *JenniferGenerator) Check(ctx context.Context) ([]*File, error) {
	files, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}
	var stale []*File
	for _, f := range files {
		ok, err := f.UpToDate()
		if err != nil {
			return nil, err
		}
		if !ok {
			stale = append(stale, f)
		}
	}
	return stale, nil
}

func (g *JenniferGenerator) renderPackage(p *Package) (*File, Diagnostics, error) {
	path := filepath.Join(p.Dir, g.graph.Output)
	if len(p.Decls) == 0 {
		return &File{Path: path, Remove: true}, nil, nil
	}
	f := g.NewFile(p.Name)
	for _, d := range p.Decls {
		g.genDeclaration(f, d)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, nil, NewGenerationError("render", path, "package "+p.Path, err)
	}
	ds, err := methodConflicts(p, path, buf.Bytes())
	if err != nil {
		return nil, nil, err
	}
	g.graph.Log().Debug("package rendered",
		zap.String("package", p.Path),
		zap.Int("enums", len(p.Enums())),
		zap.Int("identifiers", len(p.Identifiers())),
	)
	return &File{Path: path, Content: buf.Bytes()}, ds, nil
}

// genDeclaration emits the base code, then the code of every targeted
// backend, then the opted-in adapters.
func (g *JenniferGenerator) genDeclaration(f *jen.File, d Declaration) {
	switch d := d.(type) {
	case *Enum:
		g.dialect.GenEnum(f, d)
		for _, b := range g.dialect.Backends() {
			if d.Targeting(b.Backend()) {
				b.GenEnumCodec(f, d)
			}
		}
		for _, i := range g.integrations {
			if d.Wants(i.Feature()) {
				i.GenEnumAdapter(f, d)
			}
		}
	case *Identifier:
		g.dialect.GenIdentifier(f, d)
		for _, b := range g.dialect.Backends() {
			if d.Targeting(b.Backend()) {
				b.GenIdentifierCodec(f, d)
			}
		}
		for _, i := range g.integrations {
			if d.Wants(i.Feature()) {
				i.GenIdentifierAdapter(f, d)
			}
		}
	}
}

// =============================================================================
// GeneratorHelper interface implementation
// =============================================================================

// NewFile creates a new Jennifer file with the header comment.
func (g *JenniferGenerator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	header := DefaultHeader
	if g.graph.Config != nil && g.graph.Header != "" {
		header = g.graph.Header
	}
	f.HeaderComment(header)
	f.ImportNames(map[string]string{
		RuntimePkg:                          "dbtype",
		"github.com/google/uuid":            "uuid",
		"github.com/oklog/ulid/v2":          "ulid",
		"github.com/jackc/pgx/v5/pgtype":    "pgtype",
		"github.com/invopop/jsonschema":     "jsonschema",
		"github.com/vmihailenco/msgpack/v5": "msgpack",
	})
	return f
}

// Graph returns the declaration graph.
func (g *JenniferGenerator) Graph() *Graph {
	return g.graph
}

// FeatureEnabled reports if the given feature name is enabled.
func (g *JenniferGenerator) FeatureEnabled(name string) bool {
	return g.graph.Config != nil && g.graph.Config.FeatureEnabled(name)
}

// RuntimePkg returns the import path of the runtime support package.
func (g *JenniferGenerator) RuntimePkg() string {
	return RuntimePkg
}
