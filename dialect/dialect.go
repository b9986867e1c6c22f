package dialect

import "slices"

// Backend names.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
)

// Backends lists every supported backend in emission order.
var Backends = []string{Postgres, MySQL}

// Valid reports whether name is a supported backend.
func Valid(name string) bool {
	return slices.Contains(Backends, name)
}

// DriverNames returns the database/sql driver names known to serve backend.
func DriverNames(backend string) []string {
	switch backend {
	case Postgres:
		return []string{"pgx", "postgres"}
	case MySQL:
		return []string{"mysql"}
	default:
		return nil
	}
}

// Sort orders backends by emission order and drops duplicates. Unknown names
// sort last, in their original order.
func Sort(backends []string) []string {
	out := make([]string, 0, len(backends))
	for _, b := range Backends {
		if slices.Contains(backends, b) {
			out = append(out, b)
		}
	}
	for _, b := range backends {
		if !Valid(b) && !slices.Contains(out, b) {
			out = append(out, b)
		}
	}
	return out
}
