package gen

import "github.com/dave/jennifer/jen"

// =============================================================================
// Interface Segregation: code generation is split by concern
// =============================================================================

// DeclarationGenerator emits the backend-independent code of a declaration:
// labels, parsing and validated construction, and the database/sql bridge.
type DeclarationGenerator interface {
	// GenEnum emits Label, IsValid, String, Parse<T>, <T>Values and, when the
	// enum targets a backend, Value and Scan.
	GenEnum(f *jen.File, e *Enum)
	// GenIdentifier emits Parse<T>, New<T>, Get, String, DangerouslyNew<T>
	// and, when the identifier targets a backend, Value and Scan.
	GenIdentifier(f *jen.File, id *Identifier)
}

// BackendGenerator emits the mapping of declarations to one backend.
// It is only called for declarations targeting the backend.
type BackendGenerator interface {
	// Backend returns the backend name (dialect.Postgres, dialect.MySQL).
	Backend() string
	GenEnumCodec(f *jen.File, e *Enum)
	GenIdentifierCodec(f *jen.File, id *Identifier)
}

// IntegrationGenerator emits an optional adapter for an external library.
// It is only called for declarations opting into the feature.
type IntegrationGenerator interface {
	// Feature returns the feature name, which is also the directive key.
	Feature() string
	GenEnumAdapter(f *jen.File, e *Enum)
	GenIdentifierAdapter(f *jen.File, id *Identifier)
}

// MinimalDialect requires the declaration code and the backend mappings.
// This is the minimum interface a dialect must implement.
type MinimalDialect interface {
	// Name returns the dialect name (e.g., "sql").
	Name() string
	DeclarationGenerator
	// Backends returns the backend generators in emission order.
	Backends() []BackendGenerator
}

// DialectGenerator is a MinimalDialect that also emits integration adapters.
//
//	┌──────────────────────────────────────────────┐
//	│              JenniferGenerator               │
//	│  (one file per package, rendered in parallel)│
//	└──────────────────────┬───────────────────────┘
//	                       │ per declaration, in order
//	        ┌──────────────┼──────────────────┐
//	        ▼              ▼                  ▼
//	 Declaration    BackendGenerator   IntegrationGenerator
//	  (base code)  (postgres, mysql)  (json, jsonschema, ...)
//
// Usage:
//
//	import "github.com/syssam/dbtype/compiler/gen/sql"
//
//	generator := gen.NewJenniferGenerator(graph)
//	generator.WithDialect(sql.NewDialect(generator))
type DialectGenerator interface {
	MinimalDialect
	// Integrations returns the adapters in emission order.
	Integrations() []IntegrationGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the configured header comment.
	NewFile(pkg string) *jen.File

	// Graph returns the declaration graph.
	Graph() *Graph

	// FeatureEnabled reports if the given feature name is enabled.
	FeatureEnabled(name string) bool

	// RuntimePkg returns the import path of the runtime support package.
	RuntimePkg() string
}
