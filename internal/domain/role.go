package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// CanEdit reports whether the role may mutate board content.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleMember
}
