package dbtype

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresEnum is implemented by enums generated for the postgres backend.
// Besides the database/sql contracts, such enums satisfy pgx's text scanning
// contracts so a native enum column decodes through the registered EnumCodec
// without an intermediate string.
type PostgresEnum interface {
	pgtype.TextValuer
	PostgresTypeName() string
}

// RegisterPostgresTypes loads the native enum types of the given enums and
// their array types into the type map of conn. It is typically called from
// pgxpool.Config.AfterConnect:
//
//	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
//		return dbtype.RegisterPostgresTypes(ctx, conn, billing.Status(0), billing.Plan(""))
//	}
func RegisterPostgresTypes(ctx context.Context, conn *pgx.Conn, enums ...PostgresEnum) error {
	seen := make(map[string]bool, len(enums))
	for _, e := range enums {
		name := e.PostgresTypeName()
		if seen[name] {
			continue
		}
		seen[name] = true
		// The element type must be registered before its array type.
		for _, typeName := range []string{name, "_" + name} {
			t, err := conn.LoadType(ctx, typeName)
			if err != nil {
				return fmt.Errorf("dbtype: load postgres type %q: %w", typeName, err)
			}
			conn.TypeMap().RegisterType(t)
		}
	}
	return nil
}

// PostgresText returns label as a valid pgtype.Text.
func PostgresText(label string) pgtype.Text {
	return pgtype.Text{String: label, Valid: true}
}

// TextFromPostgres returns the label held by a pgtype.Text.
func TextFromPostgres(typ string, v pgtype.Text) (string, error) {
	if !v.Valid {
		return "", NewScanError(typ, nil)
	}
	return v.String, nil
}
