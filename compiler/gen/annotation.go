package gen

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/dialect"
)

// Directive kinds.
const (
	KindEnum = "enum"
	KindID   = "id"
)

// Directive keys taking a value.
const (
	keyBackends   = "backends"
	keyRenameAll  = "rename-all"
	keyPGType     = "pg-type"
	keyMySQLRepr  = "mysql-repr"
	keyTrimPrefix = "trim-prefix"
	keyRename     = "rename"
)

var (
	enumKeys = []string{
		keyBackends, keyRenameAll, keyPGType, keyMySQLRepr, keyTrimPrefix,
		FeatureJSON.Name, FeatureJSONSchema.Name, FeatureGraphQL.Name, FeatureMsgpack.Name,
	}
	idKeys = []string{
		keyBackends,
		FeatureJSON.Name, FeatureJSONSchema.Name, FeatureGraphQL.Name, FeatureDangerousConstruction.Name,
	}
	valueKeys = []string{keyBackends, keyRenameAll, keyPGType, keyMySQLRepr, keyTrimPrefix, keyRename}
)

// directives indexes the directives of one declaration by key.
type directives map[string]*load.Directive

func (ds directives) has(key string) bool {
	_, ok := ds[key]
	return ok
}

// pos returns the position of key, or def if the key is absent.
func (ds directives) pos(key string, def token.Position) token.Position {
	if d, ok := ds[key]; ok {
		return d.Pos
	}
	return def
}

// annotator turns loaded declarations into the model, collecting
// diagnostics instead of stopping at the first one.
type annotator struct {
	cfg   *Config
	diags Diagnostics
}

func (a *annotator) report(kind DiagnosticKind, pos token.Position, typ, cas, backend, format string, args ...any) {
	a.diags = append(a.diags, &Diagnostic{
		Kind:    kind,
		Pos:     pos,
		Type:    typ,
		Case:    cas,
		Backend: backend,
		Message: fmt.Sprintf(format, args...),
	})
}

// annotate returns the model of decl, or nil if the declaration cannot be
// modeled. Directive syntax problems are reported even when the model is nil.
func (a *annotator) annotate(decl *load.Decl) Declaration {
	for _, err := range decl.Errors {
		a.report(InvalidDirectiveValue, err.Pos, decl.Name, "", "", "%s in %q", err.Msg, err.Text)
	}
	var kinds []string
	for _, k := range decl.Kinds {
		switch {
		case k != KindEnum && k != KindID:
			a.report(UnknownDirective, decl.Pos, decl.Name, "", "", "unknown kind %q; expected %q or %q", k, KindEnum, KindID)
		case !slices.Contains(kinds, k):
			kinds = append(kinds, k)
		}
	}
	switch len(kinds) {
	case 0:
		return nil
	case 1:
	default:
		a.report(DuplicateDirective, decl.Pos, decl.Name, "", "", "type is declared both %s and %s", kinds[0], kinds[1])
		return nil
	}
	allowed := enumKeys
	if kinds[0] == KindID {
		allowed = idKeys
	}
	dirs := a.index(decl.Name, "", decl.Directives, allowed)
	// A nil *Enum or *Identifier must not become a non-nil Declaration.
	if kinds[0] == KindID {
		if id := a.identifier(decl, dirs); id != nil {
			return id
		}
		return nil
	}
	if e := a.enum(decl, dirs); e != nil {
		return e
	}
	return nil
}

// index checks directive keys and values. Unknown or repeated keys are
// reported and dropped.
func (a *annotator) index(typ, cas string, list []*load.Directive, allowed []string) directives {
	dirs := make(directives, len(list))
	for _, d := range list {
		switch {
		case !slices.Contains(allowed, d.Key):
			a.report(UnknownDirective, d.Pos, typ, cas, "", "unknown directive %q", d.Key)
		case dirs.has(d.Key):
			a.report(DuplicateDirective, d.Pos, typ, cas, "", "directive %q is already set at %s", d.Key, dirs[d.Key].Pos)
		case slices.Contains(valueKeys, d.Key) && !d.HasValue:
			a.report(InvalidDirectiveValue, d.Pos, typ, cas, "", "directive %q requires a value", d.Key)
		case !slices.Contains(valueKeys, d.Key) && d.HasValue:
			a.report(InvalidDirectiveValue, d.Pos, typ, cas, "", "directive %q does not take a value", d.Key)
		default:
			dirs[d.Key] = d
		}
	}
	return dirs
}

// backends returns the requested backends in emission order, or the enabled
// backends when the directive is absent.
func (a *annotator) backends(typ string, dirs directives) []string {
	d, ok := dirs[keyBackends]
	if !ok {
		return slices.Clone(a.cfg.Backends)
	}
	var names []string
	for _, name := range strings.Split(d.Value, ",") {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
			// backends="" selects no backend: base code only.
		case !dialect.Valid(name):
			a.report(InvalidDirectiveValue, d.Pos, typ, "", "", "unknown backend %q; expected %s", name, strings.Join(dialect.Backends, " or "))
		default:
			names = append(names, name)
		}
	}
	return dialect.Sort(names)
}

// integrations returns the opted-in features, in AllFeatures order.
func integrations(dirs directives) []string {
	var names []string
	for _, f := range AllFeatures {
		if f.Name != FeatureDangerousConstruction.Name && dirs.has(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

func (a *annotator) enum(decl *load.Decl, dirs directives) *Enum {
	e := &Enum{
		Name:         decl.Name,
		Pos:          decl.Pos,
		Description:  description(decl.Name, decl.Doc),
		Underlying:   decl.Underlying,
		Backends:     a.backends(decl.Name, dirs),
		Integrations: integrations(dirs),
		PostgresType: RenameSnakeCase.Apply(decl.Name),
		MySQLRepr:    MySQLText,
		RenameAll:    DefaultRenameRule,
		HasString:    decl.HasMethod("String"),
		Methods:      decl.Methods,
		dirs:         dirs,
	}
	if d, ok := dirs[keyRenameAll]; ok {
		rule, ok := ParseRenameRule(d.Value)
		if !ok {
			a.report(InvalidDirectiveValue, d.Pos, e.Name, "", "", "unknown rename rule %q", d.Value)
		}
		e.RenameAll = rule
	}
	if d, ok := dirs[keyMySQLRepr]; ok {
		if d.Value != MySQLText && d.Value != MySQLInt {
			a.report(InvalidDirectiveValue, d.Pos, e.Name, "", "", "unknown mysql representation %q; expected %q or %q", d.Value, MySQLText, MySQLInt)
		}
		e.MySQLRepr = d.Value
	}
	if d, ok := dirs[keyPGType]; ok {
		e.PostgresType = d.Value
	}
	trim := e.Name
	if d, ok := dirs[keyTrimPrefix]; ok {
		trim = d.Value
	}
	switch {
	case decl.Shape != load.ShapeInteger && decl.Shape != load.ShapeString:
		a.report(UnsupportedShape, e.Pos, e.Name, "", "", "enum must be defined over an integer or string type, not %s", decl.Underlying)
		return nil
	case len(decl.Consts) == 0:
		a.report(UnsupportedShape, e.Pos, e.Name, "", "", "enum declares no constants of type %s", e.Name)
		return nil
	}
	for i, c := range decl.Consts {
		if v := a.variant(e, c, trim); v != nil {
			if e.IsString() {
				v.Discriminant, v.Exact = int64(i), true
			}
			e.Variants = append(e.Variants, v)
		}
	}
	return e
}

func (a *annotator) variant(e *Enum, c *load.Const, trim string) *Variant {
	v := &Variant{
		Const:        c.Name,
		Name:         strings.TrimPrefix(c.Name, trim),
		Discriminant: c.Int,
		Exact:        c.IntExact,
		Pos:          c.Pos,
	}
	if v.Name == "" {
		v.Name = c.Name
	}
	for _, err := range c.Errors {
		a.report(InvalidDirectiveValue, err.Pos, e.Name, v.Name, "", "%s in %q", err.Msg, err.Text)
	}
	dirs := a.index(e.Name, v.Name, c.Directives, []string{keyRename})
	switch d, ok := dirs[keyRename]; {
	case ok:
		if d.Value == "" {
			a.report(InvalidDirectiveValue, d.Pos, e.Name, v.Name, "", "rename cannot be empty")
			return nil
		}
		v.Label, v.Renamed = d.Value, true
	case e.IsString():
		if c.Str == "" {
			a.report(UnsupportedShape, c.Pos, e.Name, v.Name, "", "string constant is empty; add a rename directive")
			return nil
		}
		v.Label = c.Str
	default:
		v.Label = e.RenameAll.Apply(v.Name)
	}
	return v
}

func (a *annotator) identifier(decl *load.Decl, dirs directives) *Identifier {
	id := &Identifier{
		Name:         decl.Name,
		Pos:          decl.Pos,
		Description:  description(decl.Name, decl.Doc),
		Backends:     a.backends(decl.Name, dirs),
		Integrations: integrations(dirs),
		Dangerous:    dirs.has(FeatureDangerousConstruction.Name),
		HasString:    decl.HasMethod("String"),
		Methods:      decl.Methods,
		dirs:         dirs,
	}
	if decl.Shape != load.ShapeStruct || len(decl.Fields) != 1 {
		a.report(UnsupportedShape, id.Pos, id.Name, "", "", "identifier must be a struct with exactly one field, not %s", decl.Underlying)
		return nil
	}
	f := decl.Fields[0]
	inner, ok := LookupInner(f.Type)
	if !ok {
		a.report(MissingInnerMapping, id.Pos, id.Name, f.Name, "", "inner type %s has no SQL mapping", f.Type)
		return nil
	}
	id.Field, id.Embedded, id.Inner = f.Name, f.Embedded, inner
	return id
}
