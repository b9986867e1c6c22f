package failure

//dbtype:enum backends=postgres
type Status int

const StatusActive Status = "active"
