package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOwner      = "owner"
	RoleEditor     = "editor"
	RoleViewer     = "viewer"
	RoleSuperAdmin = "super_admin"
)

// Viewers may read routing; editors may change it.
var (
	ViewRoles = []string{RoleOwner, RoleEditor, RoleViewer}
	EditRoles = []string{RoleOwner, RoleEditor}
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsKnownRole(role string) bool {
	switch role {
	case RoleOwner, RoleEditor, RoleViewer, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
