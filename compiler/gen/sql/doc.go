// Package sql provides the database/sql dialect of the Jennifer generator.
//
// This package implements the gen.DialectGenerator interface for the
// postgres and mysql backends.
//
// Usage:
//
//	import (
//	    "github.com/syssam/dbtype/compiler/gen"
//	    "github.com/syssam/dbtype/compiler/gen/sql"
//	)
//
//	generator := gen.NewJenniferGenerator(graph)
//	generator.WithDialect(sql.NewDialect(generator))
//	generator.Generate(ctx)
//
// For an enum
//
//	//dbtype:enum backends=postgres json
//	type Status int
//
//	const (
//	    StatusActive Status = iota + 1
//	    StatusInactive
//	)
//
// the generated file holds:
//
//	Label, IsValid, String        // labels
//	ParseStatus, StatusValues     // parsing and enumeration
//	Value, Scan                   // database/sql bridge (primary backend)
//	EncodePostgres, DecodePostgres, ScanText, TextValue, PostgresTypeName
//	MarshalText, UnmarshalText    // json adapter
//
// For a typed identifier
//
//	//dbtype:id backends=postgres,mysql
//	type AccountID struct{ id uuid.UUID }
//
// it holds ParseAccountID, NewAccountID, Get, String, Value, Scan and the
// Encode/Decode pair of each backend.
package sql
