package domain

import "time"

// VerificationStatus gates all protected-route access, independent of role.
type VerificationStatus string

const (
	StatusVerified   VerificationStatus = "Verified"
	StatusUnverified VerificationStatus = "Unverified"
)

// AppUser is the application profile for an identity. Its ID equals the
// identity ID in the credential store.
type AppUser struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	DepartmentID *string
	PhotoURL     *string
	Status       VerificationStatus
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole reports whether the profile holds at least one of the
// requested roles. A nil (absent or still loading) profile and an empty
// request set both answer false; the predicate fails closed.
func (u *AppUser) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, want := range roles {
		for _, held := range u.Roles {
			if held == want {
				return true
			}
		}
	}
	return false
}

// IsVerified reports whether the profile may access protected routes.
func (u *AppUser) IsVerified() bool {
	return u != nil && u.Status == StatusVerified
}

// AppUserPatch carries a partial profile update; nil fields are left
// untouched. Status and roles change through dedicated operations.
type AppUserPatch struct {
	Name         *string
	Phone        *string
	DepartmentID *string
	PhotoURL     *string
}
