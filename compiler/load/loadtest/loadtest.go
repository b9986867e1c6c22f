// Package loadtest type-checks in-memory Go sources for tests of the dbtype
// compiler. Imports of well-known identifier packages resolve to small stubs,
// so tests run without a module cache.
package loadtest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"sort"

	"github.com/syssam/dbtype/compiler/load"
)

// stubs holds the declarations dbtype cares about in packages it maps.
var stubs = map[string]string{
	"github.com/google/uuid":   "package uuid\n\ntype UUID [16]byte\n",
	"github.com/oklog/ulid/v2": "package ulid\n\ntype ULID [16]byte\n",
	"time":                     "package time\n\ntype Time struct{ wall uint64 }\n",
}

// Importer resolves stubbed packages from source and falls back to the
// source importer for everything else.
type Importer struct {
	fset     *token.FileSet
	pkgs     map[string]*types.Package
	fallback types.Importer
}

// NewImporter returns an Importer sharing fset.
func NewImporter(fset *token.FileSet) *Importer {
	return &Importer{
		fset:     fset,
		pkgs:     make(map[string]*types.Package),
		fallback: importer.ForCompiler(fset, "source", nil),
	}
}

// Import implements types.Importer.
func (i *Importer) Import(path string) (*types.Package, error) {
	if p, ok := i.pkgs[path]; ok {
		return p, nil
	}
	src, ok := stubs[path]
	if !ok {
		return i.fallback.Import(path)
	}
	f, err := parser.ParseFile(i.fset, path+"/stub.go", src, 0)
	if err != nil {
		return nil, err
	}
	p, err := (&types.Config{}).Check(path, i.fset, []*ast.File{f}, nil)
	if err != nil {
		return nil, err
	}
	i.pkgs[path] = p
	return p, nil
}

// Package parses and type-checks files (name to source) as the package at
// path.
func Package(path string, files map[string]string) (*load.Package, error) {
	fset := token.NewFileSet()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	parsed := make([]*ast.File, 0, len(names))
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, files[name], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		parsed = append(parsed, f)
	}
	return load.Check(fset, path, parsed, NewImporter(fset))
}

// Source is Package for a single file named "types.go".
func Source(path, src string) (*load.Package, error) {
	return Package(path, map[string]string{"types.go": src})
}
