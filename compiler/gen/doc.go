// Package gen turns annotated Go declarations into database mapping code.
//
// The pipeline follows this flow:
//
//	Go packages (//dbtype: directives)
//	        ↓
//	   load.Package (go/packages + go/types)
//	        ↓
//	   Graph (Enum and Identifier models, validated)
//	        ↓
//	   DialectGenerator (gen/sql)
//	        ↓
//	   dbtype_gen.go, one per package
//
// # Key Types
//
//   - Config: build-level backends and feature-flags, set with Option values
//   - Graph: the validated declarations of all packages
//   - Enum, Variant: an enumerated type and its cases
//   - Identifier, InnerType: a typed identifier and the type it wraps
//   - JenniferGenerator: renders and writes the output files
//
// # Interface Hierarchy
//
//	MinimalDialect
//	├── Name() string
//	├── DeclarationGenerator (GenEnum, GenIdentifier)
//	└── Backends() []BackendGenerator
//
//	DialectGenerator (extends MinimalDialect)
//	└── Integrations() []IntegrationGenerator
//
// # Error Handling
//
// Invalid declarations are reported as Diagnostics, one Diagnostic per
// violated rule, sorted by position. Every Diagnostic matches
// ErrInvalidDeclaration and the sentinel of its kind:
//
//	g, err := gen.NewGraph(cfg, pkgs...)
//	if errors.Is(err, gen.ErrBackendNotEnabled) {
//	    // ...
//	}
//	if ds, ok := gen.AsDiagnostics(err); ok {
//	    for _, d := range ds {
//	        fmt.Println(d)
//	    }
//	}
//
// Configuration problems are ConfigError values and render or write
// failures are GenerationError values. Nothing is written when NewGraph
// fails.
package gen
