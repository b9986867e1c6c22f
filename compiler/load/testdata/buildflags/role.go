//go:build roles

package buildflags

//dbtype:enum backends=postgres
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)
