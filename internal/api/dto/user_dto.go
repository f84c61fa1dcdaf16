package dto

import "github.com/spec-kit/inspection-service/internal/domain"

// ProfilePatchRequest patches the caller's own profile.
type ProfilePatchRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	DepartmentID *string `json:"department_id"`
	PhotoURL     *string `json:"photo_url"`
}

// Patch converts the request into a domain patch.
func (r ProfilePatchRequest) Patch() domain.AppUserPatch {
	return domain.AppUserPatch{
		Name:         r.Name,
		Phone:        r.Phone,
		DepartmentID: r.DepartmentID,
		PhotoURL:     r.PhotoURL,
	}
}

// SetRolesRequest replaces a user's role array.
type SetRolesRequest struct {
	Roles []string `json:"roles"`
}

// SetClaimsRequest mirrors the admin flag into identity metadata.
type SetClaimsRequest struct {
	Admin bool `json:"admin"`
}

// RoleUpdateResponse reports the two-phase role update outcome.
type RoleUpdateResponse struct {
	StoreUpdated   bool   `json:"store_updated"`
	ClaimsMirrored bool   `json:"claims_mirrored"`
	MirrorError    string `json:"mirror_error,omitempty"`
}

// UserResponse is the wire form of a profile.
type UserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        *string  `json:"phone,omitempty"`
	DepartmentID *string  `json:"department_id,omitempty"`
	PhotoURL     *string  `json:"photo_url,omitempty"`
	Status       string   `json:"status"`
	Roles        []string `json:"role"`
}

// NewUserResponse maps a domain profile.
func NewUserResponse(u domain.AppUser) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		DepartmentID: u.DepartmentID,
		PhotoURL:     u.PhotoURL,
		Status:       string(u.Status),
		Roles:        domain.RoleStrings(u.Roles),
	}
}

// NewUserList maps a snapshot.
func NewUserList(users []domain.AppUser) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = NewUserResponse(u)
	}
	return out
}
