package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
)

// methodConflicts parses the rendered file of p and reports every generated
// method that a declaration already declares by hand.
func methodConflicts(p *Package, path string, src []byte) (Diagnostics, error) {
	f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, NewGenerationError("parse", path, "package "+p.Path, err)
	}
	generated := make(map[string][]string)
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		typ := fd.Recv.List[0].Type
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		if id, ok := typ.(*ast.Ident); ok {
			generated[id.Name] = append(generated[id.Name], fd.Name.Name)
		}
	}
	var ds Diagnostics
	for _, d := range p.Decls {
		for _, m := range handWritten(d) {
			if slices.Contains(generated[d.TypeName()], m) {
				ds = append(ds, &Diagnostic{
					Kind:    MethodConflict,
					Pos:     d.Position(),
					Type:    d.TypeName(),
					Message: fmt.Sprintf("method %s is declared by hand and would be generated again; remove it or the directive", m),
				})
			}
		}
	}
	return ds, nil
}

func handWritten(d Declaration) []string {
	switch d := d.(type) {
	case *Enum:
		return d.Methods
	case *Identifier:
		return d.Methods
	}
	return nil
}
