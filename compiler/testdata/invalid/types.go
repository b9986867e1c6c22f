package invalid

// Status is a subscription lifecycle state.
//
//dbtype:enum backends=mysql
type Status int

const (
	StatusActive Status = iota
	StatusInactive
)

//dbtype:enum backends=postgres
type Role int
