package gen

import (
	"github.com/syssam/dbtype/compiler/load"
)

// Graph holds the validated declarations of all loaded packages.
type Graph struct {
	*Config
	// Packages in load order. Packages without declarations are kept so
	// that stale output files can be removed.
	Packages []*Package
}

// Package holds the declarations generated into one file.
type Package struct {
	Name string
	Path string
	Dir  string
	// Decls in source order.
	Decls []Declaration
}

// Enums returns the enum declarations of the package.
func (p *Package) Enums() []*Enum {
	var enums []*Enum
	for _, d := range p.Decls {
		if e, ok := d.(*Enum); ok {
			enums = append(enums, e)
		}
	}
	return enums
}

// Identifiers returns the identifier declarations of the package.
func (p *Package) Identifiers() []*Identifier {
	var ids []*Identifier
	for _, d := range p.Decls {
		if id, ok := d.(*Identifier); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// NewGraph models and validates the declarations of the loaded packages.
// It returns Diagnostics if any declaration is invalid; a graph is only
// returned when every declaration can be generated.
func NewGraph(c *Config, pkgs ...*load.Package) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	a := &annotator{cfg: c}
	g := &Graph{Config: c}
	for _, lp := range pkgs {
		p := &Package{Name: lp.Name, Path: lp.Path, Dir: lp.Dir}
		for _, o := range lp.Orphans {
			a.report(UnknownDirective, o.Pos, o.Type, o.Const, "", "directive on a constant of type %s, which has no //dbtype:enum line", o.Type)
		}
		for _, decl := range lp.Decls {
			d := a.annotate(decl)
			if d == nil {
				continue
			}
			a.validate(d)
			p.Decls = append(p.Decls, d)
		}
		g.Packages = append(g.Packages, p)
	}
	if err := a.diags.err(); err != nil {
		return nil, err
	}
	return g, nil
}
