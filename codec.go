package dbtype

import (
	"database/sql"
	"database/sql/driver"
	"math"
	"strconv"
)

// PostgresEncoder is implemented by types generated for the postgres backend.
type PostgresEncoder interface {
	EncodePostgres() (driver.Value, error)
}

// PostgresDecoder is implemented by pointers to types generated for the
// postgres backend.
type PostgresDecoder interface {
	DecodePostgres(src any) error
}

// MySQLEncoder is implemented by types generated for the mysql backend.
type MySQLEncoder interface {
	EncodeMySQL() (driver.Value, error)
}

// MySQLDecoder is implemented by pointers to types generated for the mysql
// backend.
type MySQLDecoder interface {
	DecodeMySQL(src any) error
}

// PostgresValue selects the postgres representation of v as a query argument.
// It is only needed when a type targets both backends, since Value uses
// postgres in that case anyway.
//
//	db.ExecContext(ctx, "UPDATE subscriptions SET status = $1", dbtype.PostgresValue(s))
func PostgresValue(v PostgresEncoder) driver.Valuer {
	return valuerFunc(v.EncodePostgres)
}

// PostgresScan selects the postgres representation of v as a scan destination.
func PostgresScan(v PostgresDecoder) sql.Scanner {
	return scannerFunc(v.DecodePostgres)
}

// MySQLValue selects the mysql representation of v as a query argument.
//
//	db.ExecContext(ctx, "UPDATE subscriptions SET status = ?", dbtype.MySQLValue(s))
func MySQLValue(v MySQLEncoder) driver.Valuer {
	return valuerFunc(v.EncodeMySQL)
}

// MySQLScan selects the mysql representation of v as a scan destination.
func MySQLScan(v MySQLDecoder) sql.Scanner {
	return scannerFunc(v.DecodeMySQL)
}

type valuerFunc func() (driver.Value, error)

func (f valuerFunc) Value() (driver.Value, error) { return f() }

type scannerFunc func(any) error

func (f scannerFunc) Scan(src any) error { return f(src) }

// TextFromSQL returns the label held by a driver value. Drivers hand back
// text columns either as string (pgx, sqlite) or []byte (lib/pq, mysql).
func TextFromSQL(typ string, src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", NewScanError(typ, src)
	}
}

// Int64FromSQL returns the discriminant held by a driver value. The mysql
// text protocol returns integer columns as []byte, so textual forms are
// parsed. Text that is not an integer is reported as an unknown label.
func Int64FromSQL(typ string, src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, NewUnknownVariantLabelError(typ, strconv.FormatUint(v, 10))
		}
		return int64(v), nil
	case []byte:
		return parseDiscriminant(typ, string(v))
	case string:
		return parseDiscriminant(typ, v)
	default:
		return 0, NewScanError(typ, src)
	}
}

func parseDiscriminant(typ, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, NewUnknownVariantLabelError(typ, s)
	}
	return n, nil
}
