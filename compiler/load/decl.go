package load

import (
	"fmt"
	"go/token"
)

// Package is a Go package that was loaded and type-checked, together with
// the annotated declarations found in it.
type Package struct {
	Name  string   `json:"name,omitempty"`
	Path  string   `json:"path,omitempty"`
	Dir   string   `json:"dir,omitempty"`
	Files []string `json:"files,omitempty"`
	Decls []*Decl  `json:"decls,omitempty"`
	// Orphans holds constants carrying directives although their type has
	// no //dbtype: kind line.
	Orphans []*Orphan `json:"orphans,omitempty"`
}

// Orphan is a constant with directives whose type is not annotated.
type Orphan struct {
	Const string         `json:"const,omitempty"`
	Type  string         `json:"type,omitempty"`
	Pos   token.Position `json:"-"`
}

// Shape classifies the underlying type of an annotated declaration.
type Shape int

// Shapes of annotated declarations.
const (
	ShapeOther   Shape = iota // anything dbtype cannot generate for
	ShapeInteger              // integer kinds: int, int8, ..., uint64
	ShapeString               // string
	ShapeStruct               // struct types
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeInteger:
		return "integer"
	case ShapeString:
		return "string"
	case ShapeStruct:
		return "struct"
	default:
		return "other"
	}
}

// Decl is a type declaration carrying at least one //dbtype: directive line.
type Decl struct {
	Name string         `json:"name,omitempty"`
	Pos  token.Position `json:"-"`
	// Doc is the doc comment without directive lines.
	Doc string `json:"doc,omitempty"`
	// Kinds holds the kind of every directive line, e.g. ["enum"].
	Kinds      []string     `json:"kinds,omitempty"`
	Directives []*Directive `json:"directives,omitempty"`
	// Errors holds malformed directive lines.
	Errors []*DirectiveError `json:"-"`

	Shape Shape `json:"shape,omitempty"`
	// Underlying is the underlying type as written by go/types, e.g. "int32"
	// or "struct{id github.com/google/uuid.UUID}".
	Underlying string `json:"underlying,omitempty"`

	// Consts holds the constants of the declared type, in source order.
	Consts []*Const `json:"consts,omitempty"`
	// Fields holds the fields of a struct declaration.
	Fields []*Field `json:"fields,omitempty"`
	// Methods holds the names of methods already declared on the type or its
	// pointer in hand-written files.
	Methods []string `json:"methods,omitempty"`
}

// Kind returns the first directive kind of the declaration.
func (d *Decl) Kind() string {
	if len(d.Kinds) == 0 {
		return ""
	}
	return d.Kinds[0]
}

// HasMethod reports whether name is already declared on the type.
func (d *Decl) HasMethod(name string) bool {
	for _, m := range d.Methods {
		if m == name {
			return true
		}
	}
	return false
}

// Const is a constant of an annotated type.
type Const struct {
	Name       string            `json:"name,omitempty"`
	Pos        token.Position    `json:"-"`
	Directives []*Directive      `json:"directives,omitempty"`
	Errors     []*DirectiveError `json:"-"`
	// Int is the value of an integer constant. IntExact is false when the
	// value does not fit an int64.
	Int      int64 `json:"int,omitempty"`
	IntExact bool  `json:"int_exact,omitempty"`
	// Str is the value of a string constant.
	Str string `json:"str,omitempty"`
	// Value is the exact constant value as written by go/constant.
	Value string `json:"value,omitempty"`
}

// Field is a struct field of an annotated type.
type Field struct {
	Name     string  `json:"name,omitempty"`
	Embedded bool    `json:"embedded,omitempty"`
	Type     TypeRef `json:"type"`
}

// TypeRef references a Go type. PkgPath is empty for predeclared types.
type TypeRef struct {
	PkgPath string `json:"pkg_path,omitempty"`
	Name    string `json:"name,omitempty"`
}

// String returns the qualified type name, e.g. "github.com/google/uuid.UUID".
func (r TypeRef) String() string {
	if r.PkgPath == "" {
		return r.Name
	}
	return r.PkgPath + "." + r.Name
}

// Directive is one key or key=value token of a directive line.
type Directive struct {
	Key      string         `json:"key,omitempty"`
	Value    string         `json:"value,omitempty"`
	HasValue bool           `json:"has_value,omitempty"`
	Pos      token.Position `json:"-"`
}

// String returns the directive as it would be written.
func (d *Directive) String() string {
	if !d.HasValue {
		return d.Key
	}
	return d.Key + "=" + d.Value
}

// DirectiveError reports a directive line that could not be tokenized.
type DirectiveError struct {
	Pos  token.Position
	Text string
	Msg  string
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: malformed directive %q: %s", e.Pos, e.Text, e.Msg)
}
