// Package load loads Go packages and extracts the type declarations
// annotated with //dbtype: directives.
package load

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"
)

// DefaultOutput is the name of the file dbtype writes into each package.
const DefaultOutput = "dbtype_gen.go"

// Config configures package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// current directory.
	Dir string
	// BuildFlags are passed to the go command, e.g. "-tags=integration".
	BuildFlags []string
	// Output is the generated file name. Existing files with that name are
	// replaced by an empty package clause while loading, so that a stale
	// output never breaks type-checking. Defaults to DefaultOutput.
	Output string
}

// Load loads the packages matching patterns and inspects them.
func (c *Config) Load(ctx context.Context, patterns ...string) ([]*Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	output := c.Output
	if output == "" {
		output = DefaultOutput
	}
	overlay, err := c.overlay(ctx, output, patterns)
	if err != nil {
		return nil, err
	}
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
		Overlay:    overlay,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "loading packages %v", patterns)
	}
	if err := packageErrors(pkgs); err != nil {
		return nil, err
	}
	out := make([]*Package, 0, len(pkgs))
	for _, p := range pkgs {
		lp := &Package{Name: p.Name, Path: p.PkgPath}
		lp.Decls, lp.Orphans = Inspect(p.Fset, p.Syntax, p.TypesInfo)
		for _, f := range p.GoFiles {
			if lp.Dir == "" {
				lp.Dir = filepath.Dir(f)
			}
			if filepath.Base(f) != output {
				lp.Files = append(lp.Files, f)
			}
		}
		out = append(out, lp)
	}
	return out, nil
}

// Dirs returns the directories of the packages matching patterns. Packages
// are listed without type-checking, so packages that do not compile yet are
// included.
func (c *Config) Dirs(ctx context.Context, patterns ...string) ([]string, error) {
	pkgs, err := c.list(ctx, patterns)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, p := range pkgs {
		if len(p.GoFiles) == 0 {
			continue
		}
		if dir := filepath.Dir(p.GoFiles[0]); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}

// list loads the names and files of the packages matching patterns.
func (c *Config) list(ctx context.Context, patterns []string) ([]*packages.Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context:    ctx,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
		Mode:       packages.NeedName | packages.NeedFiles,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "listing packages %v", patterns)
	}
	return pkgs, nil
}

// overlay blanks out previously generated files.
func (c *Config) overlay(ctx context.Context, output string, patterns []string) (map[string][]byte, error) {
	pkgs, err := c.list(ctx, patterns)
	if err != nil {
		return nil, err
	}
	overlay := make(map[string][]byte)
	for _, p := range pkgs {
		for _, f := range p.GoFiles {
			if filepath.Base(f) == output {
				overlay[f] = []byte("package " + p.Name + "\n")
			}
		}
	}
	return overlay, nil
}

func packageErrors(pkgs []*packages.Package) error {
	var errs []error
	packages.Visit(pkgs, nil, func(p *packages.Package) {
		for _, e := range p.Errors {
			errs = append(errs, errors.Newf("%s", e))
		}
	})
	if len(errs) == 0 {
		return nil
	}
	return errors.WithHint(
		errors.Join(errs...),
		"dbtype needs packages that type-check; fix the errors above and run it again",
	)
}

// Check type-checks already parsed files and inspects them. It is used when
// the sources do not live in a module, e.g. in tests.
func Check(fset *token.FileSet, path string, files []*ast.File, imp types.Importer) (*Package, error) {
	if len(files) == 0 {
		return nil, errors.Newf("no files for package %s", path)
	}
	info := &types.Info{
		Types: make(map[ast.Expr]types.TypeAndValue),
		Defs:  make(map[*ast.Ident]types.Object),
		Uses:  make(map[*ast.Ident]types.Object),
	}
	conf := types.Config{Importer: imp}
	tpkg, err := conf.Check(path, fset, files, info)
	if err != nil {
		return nil, errors.Wrapf(err, "type-checking %s", path)
	}
	p := &Package{Name: tpkg.Name(), Path: path}
	p.Decls, p.Orphans = Inspect(fset, files, info)
	for _, f := range files {
		name := fset.Position(f.Package).Filename
		if p.Dir == "" {
			p.Dir = filepath.Dir(name)
		}
		p.Files = append(p.Files, name)
	}
	return p, nil
}
