package domain

// Role is an application role held by a profile. Roles are not mutually
// exclusive; a profile carries zero or more of them.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleAssetOfficer Role = "Asset Officer"
	RoleAuditor      Role = "Auditor"
	RoleViewer       Role = "Viewer"
)

// ParseRoles converts raw role strings (e.g. a scanned text[] column)
// into typed roles, dropping unknown values.
func ParseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		switch Role(r) {
		case RoleAdmin, RoleAssetOfficer, RoleAuditor, RoleViewer:
			roles = append(roles, Role(r))
		}
	}
	return roles
}

// RoleStrings converts typed roles back to their stored representation.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
