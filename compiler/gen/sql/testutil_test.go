package sql

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbtype/compiler/gen"
	"github.com/syssam/dbtype/compiler/load"
	"github.com/syssam/dbtype/dialect"
)

// newTestHelper returns a GeneratorHelper over an empty graph with every
// backend and feature enabled.
func newTestHelper() gen.GeneratorHelper {
	cfg := gen.MustNewConfig(
		gen.WithBackends(dialect.Postgres, dialect.MySQL),
		gen.WithFeatures(gen.AllFeatures...),
	)
	return gen.NewJenniferGenerator(&gen.Graph{Config: cfg})
}

// newTestFile returns an empty file of package billing.
func newTestFile(h gen.GeneratorHelper) *jen.File {
	return h.NewFile("billing")
}

// statusEnum returns an integer enum targeting postgres.
func statusEnum() *gen.Enum {
	return &gen.Enum{
		Name:         "Status",
		Description:  "Status is a subscription lifecycle state.",
		Underlying:   "int",
		Backends:     []string{dialect.Postgres},
		PostgresType: "subscription_status",
		MySQLRepr:    gen.MySQLText,
		Variants: []*gen.Variant{
			{Const: "StatusActive", Name: "Active", Label: "active", Discriminant: 0, Exact: true},
			{Const: "StatusPastDue", Name: "PastDue", Label: "past_due", Discriminant: 1, Exact: true},
			{Const: "StatusCanceled", Name: "Canceled", Label: "cancelled", Discriminant: 2, Exact: true, Renamed: true},
		},
	}
}

// planEnum returns a string enum targeting mysql.
func planEnum() *gen.Enum {
	return &gen.Enum{
		Name:       "Plan",
		Underlying: "string",
		Backends:   []string{dialect.MySQL},
		MySQLRepr:  gen.MySQLText,
		Variants: []*gen.Variant{
			{Const: "PlanFree", Name: "Free", Label: "free", Discriminant: 0, Exact: true},
			{Const: "PlanPro", Name: "Pro", Label: "pro", Discriminant: 1, Exact: true},
		},
	}
}

// priorityEnum returns an integer enum stored as an integer in mysql.
func priorityEnum() *gen.Enum {
	return &gen.Enum{
		Name:       "Priority",
		Underlying: "uint8",
		Backends:   []string{dialect.MySQL},
		MySQLRepr:  gen.MySQLInt,
		Variants: []*gen.Variant{
			{Const: "PriorityLow", Name: "Low", Label: "low", Discriminant: 10, Exact: true},
			{Const: "PriorityHigh", Name: "High", Label: "high", Discriminant: 20, Exact: true},
		},
	}
}

// identifier returns an identifier wrapping the inner type at pkgPath.name.
func identifier(t *testing.T, name, pkgPath, inner string, backends ...string) *gen.Identifier {
	t.Helper()
	typ, ok := gen.LookupInner(load.TypeRef{PkgPath: pkgPath, Name: inner})
	require.True(t, ok, "no mapping for %s", inner)
	return &gen.Identifier{
		Name:        name,
		Description: name + " identifies a record.",
		Field:       "id",
		Inner:       typ,
		Backends:    backends,
	}
}
