// Package dialect names the SQL backends dbtype generates code for.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - Postgres: PostgreSQL, with native enumerated types (CREATE TYPE ... AS ENUM)
//   - MySQL: MySQL/MariaDB, with enum labels in string columns or discriminants
//     in integer columns
//
// # Dialect Constants
//
// Each dialect is identified by a constant string that is also the value
// accepted by the --backend flag and the backends= directive:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//
// # Drivers
//
// Generated code only talks to database/sql and pgx contracts, so any driver
// registered for a backend works. DriverNames lists the database/sql driver
// names the repository tests against:
//
//	dialect.DriverNames(dialect.Postgres) // ["pgx", "postgres"]
//	dialect.DriverNames(dialect.MySQL)    // ["mysql"]
package dialect
