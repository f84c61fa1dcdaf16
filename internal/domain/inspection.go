package domain

import "time"

// InspectionStatus is the binary lifecycle state of an inspection.
type InspectionStatus string

const (
	InspectionPending  InspectionStatus = "Pending"
	InspectionComplete InspectionStatus = "Complete"
)

// Toggle returns the opposite status.
func (s InspectionStatus) Toggle() InspectionStatus {
	if s == InspectionPending {
		return InspectionComplete
	}
	return InspectionPending
}

// Inspection is a scheduled visit to a location. LocationName,
// Supervisor and ContactNumber are snapshots taken when the inspection
// was created; later edits to the location do not flow back into them.
// Auditor slots hold display names, not identity references.
type Inspection struct {
	ID            string
	LocationID    string
	DepartmentID  string
	LocationName  string
	Supervisor    string
	ContactNumber string
	Date          time.Time
	Auditor1      *string
	Auditor2      *string
	Status        InspectionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InspectionPatch carries a partial update; nil fields are left untouched.
type InspectionPatch struct {
	Date     *time.Time
	Auditor1 *string
	Auditor2 *string
	Status   *InspectionStatus
}
