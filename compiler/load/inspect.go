package load

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"
)

// Inspect extracts the annotated declarations of a type-checked package,
// and the directives on constants whose type is not annotated. Both are
// returned in source order: files sorted by name, then by offset.
func Inspect(fset *token.FileSet, files []*ast.File, info *types.Info) ([]*Decl, []*Orphan) {
	files = sortedFiles(fset, files)
	var (
		decls   []*Decl
		byObj   = make(map[*types.TypeName]*Decl)
		methods = make(map[string][]string)
	)
	for _, file := range files {
		for _, d := range file.Decls {
			switch d := d.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && d.Lparen == token.NoPos {
						doc = d.Doc
					}
					decl := inspectType(fset, ts, doc, info)
					if decl == nil {
						continue
					}
					decls = append(decls, decl)
					if obj, ok := info.Defs[ts.Name].(*types.TypeName); ok {
						byObj[obj] = decl
					}
				}
			case *ast.FuncDecl:
				if name := receiverName(d); name != "" {
					methods[name] = append(methods[name], d.Name.Name)
				}
			}
		}
	}
	for _, decl := range decls {
		decl.Methods = methods[decl.Name]
	}
	var orphans []*Orphan
	for _, file := range files {
		for _, d := range file.Decls {
			if gd, ok := d.(*ast.GenDecl); ok && gd.Tok == token.CONST {
				orphans = append(orphans, inspectConsts(fset, gd, info, byObj)...)
			}
		}
	}
	return decls, orphans
}

// inspectType returns nil for declarations without a directive line.
func inspectType(fset *token.FileSet, ts *ast.TypeSpec, doc *ast.CommentGroup, info *types.Info) *Decl {
	if doc == nil {
		return nil
	}
	decl := &Decl{
		Name: ts.Name.Name,
		Pos:  fset.Position(ts.Name.Pos()),
		Doc:  strings.TrimSpace(doc.Text()),
	}
	found := false
	for _, c := range doc.List {
		dirs, err, ok := ParseDirectives(c.Text, fset.Position(c.Slash))
		if !ok {
			continue
		}
		found = true
		if err != nil {
			decl.Errors = append(decl.Errors, err)
			continue
		}
		if len(dirs) == 0 {
			decl.Errors = append(decl.Errors, &DirectiveError{
				Pos:  fset.Position(c.Slash),
				Text: c.Text,
				Msg:  "missing directive kind",
			})
			continue
		}
		decl.Kinds = append(decl.Kinds, dirs[0].String())
		decl.Directives = append(decl.Directives, dirs[1:]...)
	}
	if !found {
		return nil
	}
	obj, ok := info.Defs[ts.Name].(*types.TypeName)
	switch {
	case !ok:
		decl.Underlying = "unknown"
	case ts.Assign.IsValid():
		decl.Underlying = "alias of " + types.TypeString(obj.Type(), nil)
	case ts.TypeParams != nil:
		decl.Underlying = "generic type"
	default:
		u := obj.Type().Underlying()
		decl.Underlying = types.TypeString(u, nil)
		decl.Shape, decl.Fields = shapeOf(u)
	}
	return decl
}

func shapeOf(u types.Type) (Shape, []*Field) {
	switch u := u.(type) {
	case *types.Basic:
		info := u.Info()
		switch {
		case info&types.IsInteger != 0 && info&types.IsUntyped == 0:
			return ShapeInteger, nil
		case info&types.IsString != 0 && info&types.IsUntyped == 0:
			return ShapeString, nil
		}
	case *types.Struct:
		fields := make([]*Field, 0, u.NumFields())
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			fields = append(fields, &Field{
				Name:     f.Name(),
				Embedded: f.Embedded(),
				Type:     typeRef(f.Type()),
			})
		}
		return ShapeStruct, fields
	}
	return ShapeOther, nil
}

func typeRef(t types.Type) TypeRef {
	if n, ok := t.(*types.Named); ok && n.Obj().Pkg() != nil && n.TypeArgs().Len() == 0 {
		return TypeRef{PkgPath: n.Obj().Pkg().Path(), Name: n.Obj().Name()}
	}
	// Predeclared and composite types, e.g. int64 or []byte.
	return TypeRef{Name: types.TypeString(t, nil)}
}

func inspectConsts(fset *token.FileSet, gd *ast.GenDecl, info *types.Info, byObj map[*types.TypeName]*Decl) []*Orphan {
	var orphans []*Orphan
	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		var (
			dirs []*Directive
			errs []*DirectiveError
		)
		for _, cg := range []*ast.CommentGroup{vs.Doc, vs.Comment} {
			if cg == nil {
				continue
			}
			for _, c := range cg.List {
				ds, err, ok := ParseDirectives(c.Text, fset.Position(c.Slash))
				switch {
				case !ok:
				case err != nil:
					errs = append(errs, err)
				default:
					dirs = append(dirs, ds...)
				}
			}
		}
		for _, id := range vs.Names {
			if id.Name == "_" {
				continue
			}
			obj, ok := info.Defs[id].(*types.Const)
			if !ok {
				continue
			}
			var decl *Decl
			if named, ok := obj.Type().(*types.Named); ok {
				decl = byObj[named.Obj()]
			}
			if decl == nil {
				if len(dirs) > 0 || len(errs) > 0 {
					orphans = append(orphans, &Orphan{
						Const: id.Name,
						Type:  types.TypeString(obj.Type(), types.RelativeTo(obj.Pkg())),
						Pos:   fset.Position(id.Pos()),
					})
				}
				continue
			}
			c := &Const{
				Name:       id.Name,
				Pos:        fset.Position(id.Pos()),
				Directives: dirs,
				Errors:     errs,
				Value:      obj.Val().ExactString(),
			}
			switch v := obj.Val(); v.Kind() {
			case constant.Int:
				c.Int, c.IntExact = constant.Int64Val(v)
			case constant.String:
				c.Str = constant.StringVal(v)
			}
			decl.Consts = append(decl.Consts, c)
		}
	}
	return orphans
}

// receiverName returns the base type name of a method receiver.
func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func sortedFiles(fset *token.FileSet, files []*ast.File) []*ast.File {
	out := append([]*ast.File(nil), files...)
	sort.SliceStable(out, func(i, j int) bool {
		return fset.Position(out[i].Package).Filename < fset.Position(out[j].Package).Filename
	})
	return out
}
