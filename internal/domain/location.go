package domain

import "time"

// Location is a physical site owned by a department. Creating one also
// schedules its first inspection (see service layer).
type Location struct {
	ID            string
	Name          string
	DepartmentID  string
	Supervisor    string
	ContactNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LocationPatch carries a partial update; nil fields are left untouched.
type LocationPatch struct {
	Name          *string
	DepartmentID  *string
	Supervisor    *string
	ContactNumber *string
}
