package domain

import "time"

// Identity is an authenticated principal in the credential store,
// distinct from its application profile row. FullName and AvatarURL are
// sign-up metadata used to seed a synthesized profile; Admin mirrors the
// profile's Admin role into the credential store and is maintained by
// the privileged gateway only.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	AvatarURL    *string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName resolves the name a synthesized profile should carry:
// sign-up metadata first, then the email, then a generic fallback.
func (i *Identity) DisplayName() string {
	if i.FullName != "" {
		return i.FullName
	}
	if i.Email != "" {
		return i.Email
	}
	return "User"
}
