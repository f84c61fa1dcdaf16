package domain

import "time"

// Department represents an organizational unit that owns locations.
type Department struct {
	ID        string
	Name      string
	Acronym   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DepartmentPatch carries a partial update; nil fields are left untouched.
type DepartmentPatch struct {
	Name    *string
	Acronym *string
}
