// Package dbtype is the runtime support library of the dbtype code generator.
//
// The generator (cmd/dbtype) reads Go type declarations annotated with
// //dbtype: directives and emits, next to them, the methods needed to store
// and load those types through database/sql and pgx:
//
//	//dbtype:enum backends=postgres,mysql json
//	type Status int
//
//	const (
//		StatusActive Status = iota
//		StatusPastDue
//		StatusCancelled
//	)
//
//	//dbtype:id backends=postgres
//	type CustomerID struct{ id uuid.UUID }
//
// Generated code depends on this package for its error types and a handful of
// helpers that normalize driver values. Nothing here inspects types at
// runtime.
//
// # Errors
//
// Decoding data that matches no declared variant fails with
// *UnknownVariantLabelError, which matches ErrUnknownVariantLabel:
//
//	var s billing.Status
//	if err := row.Scan(&s); dbtype.IsUnknownVariantLabel(err) {
//	    // the column holds a label this build does not know about
//	}
//
// Encoding an undeclared integer value fails with *InvalidVariantError, and
// NULL or an unexpected driver type fails with *ScanError.
//
// # Backends
//
// A type generated for both backends implements driver.Valuer and
// sql.Scanner with its postgres representation. Use PostgresValue,
// PostgresScan, MySQLValue and MySQLScan to pick a representation explicitly.
package dbtype
