package sql

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/dbtype/compiler/gen"
)

// Generate is a convenience function to generate the database/sql mappings of
// a graph using the Jennifer generator.
//
// Example:
//
//	import "github.com/syssam/dbtype/compiler/gen/sql"
//	err := sql.Generate(ctx, graph)
func Generate(ctx context.Context, g *gen.Graph) error {
	return newGenerator(g).Generate(ctx)
}

// Check renders the graph and returns the generated files that are missing
// or stale on disk. Nothing is written.
func Check(ctx context.Context, g *gen.Graph) ([]*gen.File, error) {
	return newGenerator(g).Check(ctx)
}

func newGenerator(g *gen.Graph) *gen.JenniferGenerator {
	generator := gen.NewJenniferGenerator(g)
	generator.WithDialect(NewDialect(generator))
	return generator
}

// Dialect implements gen.DialectGenerator for database/sql drivers.
// Every declaration gets the Value and Scan bridge of its primary backend,
// plus an explicit codec per targeted backend.
//
// Supported backends:
//   - postgres: native enum types, text labels, pgx text contracts
//   - mysql: text labels, or integer discriminants with mysql-repr=int
type Dialect struct {
	helper gen.GeneratorHelper

	backends     []gen.BackendGenerator
	integrations []gen.IntegrationGenerator
}

var _ gen.DialectGenerator = (*Dialect)(nil)

// NewDialect creates a new SQL dialect generator.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{
		helper: helper,
		backends: []gen.BackendGenerator{
			&postgresBackend{helper: helper},
			&mysqlBackend{helper: helper},
		},
		integrations: []gen.IntegrationGenerator{
			&jsonAdapter{helper: helper},
			&jsonschemaAdapter{helper: helper},
			&graphqlAdapter{helper: helper},
			&msgpackAdapter{helper: helper},
		},
	}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sql"
}

// GenEnum generates the base methods of an enum.
func (d *Dialect) GenEnum(f *jen.File, e *gen.Enum) {
	genEnum(d.helper, f, e)
}

// GenIdentifier generates the base methods of a typed identifier.
func (d *Dialect) GenIdentifier(f *jen.File, id *gen.Identifier) {
	genIdentifier(d.helper, f, id)
}

// Backends returns the postgres and mysql generators.
func (d *Dialect) Backends() []gen.BackendGenerator {
	return d.backends
}

// Integrations returns the json, jsonschema, graphql and msgpack adapters.
func (d *Dialect) Integrations() []gen.IntegrationGenerator {
	return d.integrations
}
