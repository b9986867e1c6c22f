package conflict

import "database/sql/driver"

//dbtype:enum
type Status int

const (
	StatusActive Status = iota
	StatusInactive
)

// Value stores the discriminant.
func (s Status) Value() (driver.Value, error) { return int64(s), nil }

// String is kept: the generator skips its own String.
func (s Status) String() string { return "status" }
