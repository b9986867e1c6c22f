package gen

import (
	"regexp"
	"strconv"

	"github.com/syssam/dbtype/dialect"
)

// maxPostgresName is the longest identifier or enum label Postgres stores
// without truncation (NAMEDATALEN - 1).
const maxPostgresName = 63

var pgTypeName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// validate checks a modeled declaration against the build-level capability
// flags and the backend rules.
func (a *annotator) validate(d Declaration) {
	switch d := d.(type) {
	case *Enum:
		a.validateEnum(d)
	case *Identifier:
		a.validateIdentifier(d)
	}
}

// checkCommon reports the rules shared by enums and identifiers.
func (a *annotator) checkCommon(d Declaration, dirs directives, integrations []string) {
	name, pos := d.TypeName(), d.Position()
	for _, b := range d.Targets() {
		if !a.cfg.BackendEnabled(b) {
			a.report(BackendNotEnabled, dirs.pos(keyBackends, pos), name, "", b, "enable it with --backend=%s", b)
		}
	}
	for _, f := range integrations {
		if !a.cfg.FeatureEnabled(f) {
			a.report(CapabilityNotEnabled, dirs.pos(f, pos), name, "", "", "%s requires --feature=%s", f, f)
		}
	}
	if dirs.has(FeatureJSONSchema.Name) && !dirs.has(FeatureJSON.Name) {
		a.report(MissingCompanionDirective, dirs.pos(FeatureJSONSchema.Name, pos), name, "", "", "jsonschema describes the json form; add the json directive")
	}
}

func (a *annotator) validateEnum(e *Enum) {
	a.checkCommon(e, e.dirs, e.Integrations)
	if e.dirs.has(keyPGType) {
		p := e.dirs.pos(keyPGType, e.Pos)
		switch {
		case !e.Targeting(dialect.Postgres):
			a.report(MissingCompanionDirective, p, e.Name, "", "", "pg-type requires the postgres backend")
		case !pgTypeName.MatchString(e.PostgresType) || len(e.PostgresType) > maxPostgresName:
			a.report(InvalidDirectiveValue, p, e.Name, "", dialect.Postgres, "%q is not a valid type name", e.PostgresType)
		}
	}
	if e.dirs.has(keyMySQLRepr) && !e.Targeting(dialect.MySQL) {
		a.report(MissingCompanionDirective, e.dirs.pos(keyMySQLRepr, e.Pos), e.Name, "", "", "mysql-repr requires the mysql backend")
	}
	intRepr := e.MySQLRepr == MySQLInt && e.Targeting(dialect.MySQL)
	if intRepr && e.IsString() {
		a.report(InvalidDirectiveValue, e.dirs.pos(keyMySQLRepr, e.Pos), e.Name, "", dialect.MySQL, "mysql-repr=int requires an integer enum")
		intRepr = false
	}
	if !e.IsString() {
		seen := make(map[int64]*Variant, len(e.Variants))
		for _, v := range e.Variants {
			if !v.Exact {
				if intRepr {
					a.report(InvalidDirectiveValue, v.Pos, e.Name, v.Name, dialect.MySQL, "value overflows int64")
				}
				continue
			}
			if prev, ok := seen[v.Discriminant]; ok {
				a.report(DuplicateVariantValue, v.Pos, e.Name, v.Name, "", "value %s is already used by %s", strconv.FormatInt(v.Discriminant, 10), prev.Const)
				continue
			}
			seen[v.Discriminant] = v
		}
	}
	targets := e.Backends
	if len(targets) == 0 {
		targets = []string{""}
	}
	for _, b := range targets {
		seen := make(map[string]*Variant, len(e.Variants))
		for _, v := range e.Variants {
			if prev, ok := seen[v.Label]; ok {
				a.report(DuplicateWireLabel, v.Pos, e.Name, v.Name, b, "label %q is already used by %s", v.Label, prev.Const)
				continue
			}
			seen[v.Label] = v
			if b == dialect.Postgres && len(v.Label) > maxPostgresName {
				a.report(InvalidDirectiveValue, v.Pos, e.Name, v.Name, b, "label %q is longer than %d bytes", v.Label, maxPostgresName)
			}
		}
	}
}

func (a *annotator) validateIdentifier(id *Identifier) {
	if !a.cfg.FeatureEnabled(FeatureTypedUUID.Name) {
		a.report(CapabilityNotEnabled, id.Pos, id.Name, "", "", "identifiers require --feature=%s", FeatureTypedUUID.Name)
	}
	a.checkCommon(id, id.dirs, id.Integrations)
	if id.Dangerous && !a.cfg.FeatureEnabled(FeatureDangerousConstruction.Name) {
		a.report(CapabilityNotEnabled, id.dirs.pos(FeatureDangerousConstruction.Name, id.Pos), id.Name, "", "", "dangerous-construction requires --feature=%s", FeatureDangerousConstruction.Name)
	}
	for _, b := range id.Backends {
		if !id.Inner.MapsTo(b) {
			a.report(MissingInnerMapping, id.Pos, id.Name, id.Field, b, "inner type %s has no %s mapping", id.Inner.Ref(), b)
		}
	}
}
