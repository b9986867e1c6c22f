package buildflags

//dbtype:enum backends=postgres
type Status int

const (
	StatusActive Status = iota
	StatusInactive
)
