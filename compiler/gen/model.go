package gen

import (
	"go/token"
	"slices"
	"strings"
	"unicode"

	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/dialect"
)

// Declaration is an Enum or an Identifier.
type Declaration interface {
	// TypeName returns the Go name of the declared type.
	TypeName() string
	// Position returns the position of the type name.
	Position() token.Position
	// Targets returns the backends code is generated for, in emission order.
	Targets() []string
}

// MySQL representations of enums.
const (
	MySQLText = "text"
	MySQLInt  = "int"
)

// Enum is a validated enum declaration.
type Enum struct {
	Name string
	Pos  token.Position
	// Description documents the enum in schemas.
	Description string
	// Underlying is the underlying basic type, e.g. "int" or "string".
	Underlying string
	// Variants in declaration order.
	Variants []*Variant
	Backends []string
	// Integrations holds the opted-in feature names.
	Integrations []string
	// PostgresType is the name of the native enum type.
	PostgresType string
	// MySQLRepr is MySQLText or MySQLInt.
	MySQLRepr string
	RenameAll RenameRule
	// HasString is set when the package already declares String on the type.
	HasString bool
	// Methods holds the methods declared by hand on the type.
	Methods []string

	dirs directives
}

// Variant is one case of an enum.
type Variant struct {
	// Const is the Go constant, e.g. "StatusPastDue".
	Const string
	// Name is the case name, e.g. "PastDue".
	Name string
	// Label is the wire label, e.g. "past_due".
	Label string
	// Discriminant is the constant value of integer enums, or the index
	// of the variant for string enums.
	Discriminant int64
	// Exact is false when an integer constant does not fit an int64.
	Exact bool
	// Renamed is set when Label comes from a rename directive.
	Renamed bool
	Pos     token.Position
}

// TypeName implements Declaration.
func (e *Enum) TypeName() string { return e.Name }

// Position implements Declaration.
func (e *Enum) Position() token.Position { return e.Pos }

// Targets implements Declaration.
func (e *Enum) Targets() []string { return e.Backends }

// Targeting reports whether the enum is generated for backend.
func (e *Enum) Targeting(backend string) bool { return slices.Contains(e.Backends, backend) }

// Wants reports whether the enum opted into the feature.
func (e *Enum) Wants(feature string) bool { return slices.Contains(e.Integrations, feature) }

// IsString reports whether the underlying type is string.
func (e *Enum) IsString() bool { return e.Underlying == "string" }

// Primary returns the backend used by Value and Scan, or "" when the enum
// targets no backend.
func (e *Enum) Primary() string { return primary(e.Backends) }

// Receiver returns the receiver name used in generated methods.
func (e *Enum) Receiver() string { return receiver(e.Name) }

// Labels returns the wire labels in declaration order.
func (e *Enum) Labels() []string {
	labels := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		labels[i] = v.Label
	}
	return labels
}

// Identifier is a validated typed identifier declaration.
type Identifier struct {
	Name        string
	Pos         token.Position
	Description string
	// Field is the name of the wrapped field. For embedded fields it is the
	// type name of the inner type.
	Field        string
	Embedded     bool
	Inner        InnerType
	Backends     []string
	Integrations []string
	// Dangerous enables DangerouslyNew<Name>.
	Dangerous bool
	// HasString is set when the package already declares String on the type.
	HasString bool
	// Methods holds the methods declared by hand on the type.
	Methods []string

	dirs directives
}

// TypeName implements Declaration.
func (id *Identifier) TypeName() string { return id.Name }

// Position implements Declaration.
func (id *Identifier) Position() token.Position { return id.Pos }

// Targets implements Declaration.
func (id *Identifier) Targets() []string { return id.Backends }

// Targeting reports whether the identifier is generated for backend.
func (id *Identifier) Targeting(backend string) bool { return slices.Contains(id.Backends, backend) }

// Wants reports whether the identifier opted into the feature.
func (id *Identifier) Wants(feature string) bool { return slices.Contains(id.Integrations, feature) }

// Primary returns the backend used by Value and Scan, or "".
func (id *Identifier) Primary() string { return primary(id.Backends) }

// Receiver returns the receiver name used in generated methods.
func (id *Identifier) Receiver() string { return "id" }

// Unsigned63 reports whether the identifier wraps a 64-bit unsigned integer
// stored in a signed postgres bigint. Such values must not exceed
// math.MaxInt64.
func (id *Identifier) Unsigned63() bool {
	wide := id.Inner.Kind == InnerUint && (id.Inner.Bits == 64 || id.Inner.Bits == 0)
	return wide && id.Targeting(dialect.Postgres)
}

// InnerKind classifies how generated code converts an inner type.
type InnerKind int

// Inner kinds.
const (
	// InnerValuer types implement driver.Valuer, sql.Scanner and the
	// encoding text interfaces themselves.
	InnerValuer InnerKind = iota + 1
	// InnerInt is a signed integer kind.
	InnerInt
	// InnerUint is an unsigned integer kind.
	InnerUint
	// InnerString is string.
	InnerString
)

// InnerType describes an inner type with a known mapping.
type InnerType struct {
	PkgPath string
	Name    string
	Kind    InnerKind
	// Bits is the size of integer kinds, 0 for int and uint.
	Bits int
	// Parse is the parsing function of InnerValuer types, e.g. "Parse".
	Parse string
	// Generate is the constructor of fresh values, e.g. "New" or "Make".
	Generate string
	// SchemaType and SchemaFormat describe the JSON form.
	SchemaType   string
	SchemaFormat string
	// Backends lists the backends the inner type maps to.
	Backends []string
}

// Ref returns the type reference of the inner type.
func (t InnerType) Ref() load.TypeRef { return load.TypeRef{PkgPath: t.PkgPath, Name: t.Name} }

// MapsTo reports whether the inner type has a mapping for backend.
func (t InnerType) MapsTo(backend string) bool { return slices.Contains(t.Backends, backend) }

var (
	bothBackends  = []string{dialect.Postgres, dialect.MySQL}
	innerMappings = []InnerType{
		{PkgPath: "github.com/google/uuid", Name: "UUID", Kind: InnerValuer, Parse: "Parse", Generate: "New", SchemaType: "string", SchemaFormat: "uuid", Backends: bothBackends},
		{PkgPath: "github.com/oklog/ulid/v2", Name: "ULID", Kind: InnerValuer, Parse: "Parse", Generate: "Make", SchemaType: "string", SchemaFormat: "ulid", Backends: bothBackends},
		{Name: "string", Kind: InnerString, SchemaType: "string", Backends: bothBackends},
		{Name: "int", Kind: InnerInt, SchemaType: "integer", SchemaFormat: "int64", Backends: bothBackends},
		{Name: "int16", Kind: InnerInt, Bits: 16, SchemaType: "integer", SchemaFormat: "int16", Backends: bothBackends},
		{Name: "int32", Kind: InnerInt, Bits: 32, SchemaType: "integer", SchemaFormat: "int32", Backends: bothBackends},
		{Name: "int64", Kind: InnerInt, Bits: 64, SchemaType: "integer", SchemaFormat: "int64", Backends: bothBackends},
		{Name: "uint16", Kind: InnerUint, Bits: 16, SchemaType: "integer", SchemaFormat: "uint16", Backends: bothBackends},
		{Name: "uint32", Kind: InnerUint, Bits: 32, SchemaType: "integer", SchemaFormat: "uint32", Backends: bothBackends},
		// Postgres has no unsigned 64-bit column type. Values are limited to
		// 63 bits and stored as bigint.
		{Name: "uint64", Kind: InnerUint, Bits: 64, SchemaType: "integer", SchemaFormat: "uint64", Backends: bothBackends},
		{Name: "uint", Kind: InnerUint, SchemaType: "integer", SchemaFormat: "uint64", Backends: bothBackends},
	}
)

// LookupInner returns the mapping of ref. ok is false for types without a
// mapping to any backend.
func LookupInner(ref load.TypeRef) (InnerType, bool) {
	for _, t := range innerMappings {
		if t.PkgPath == ref.PkgPath && t.Name == ref.Name {
			return t, true
		}
	}
	return InnerType{}, false
}

func primary(backends []string) string {
	if len(backends) == 0 {
		return ""
	}
	return backends[0]
}

// receiver returns the lower-cased first letter of name.
func receiver(name string) string {
	for _, r := range name {
		return string(unicode.ToLower(r))
	}
	return "v"
}

// description returns the first sentence of doc, or a humanized name.
func description(name, doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return humanize(name)
	}
	doc = strings.Join(strings.Fields(doc), " ")
	if i := strings.Index(doc, ". "); i >= 0 {
		doc = doc[:i+1]
	}
	return doc
}
