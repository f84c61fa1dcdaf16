package dto

import (
	"time"

	"github.com/spec-kit/inspection-service/internal/domain"
)

// InspectionPatchRequest applies a partial update, e.g. rescheduling.
type InspectionPatchRequest struct {
	Date     *time.Time `json:"date"`
	Auditor1 *string    `json:"auditor1"`
	Auditor2 *string    `json:"auditor2"`
	Status   *string    `json:"status"`
}

// Patch converts the request into a domain patch.
func (r InspectionPatchRequest) Patch() domain.InspectionPatch {
	patch := domain.InspectionPatch{
		Date:     r.Date,
		Auditor1: r.Auditor1,
		Auditor2: r.Auditor2,
	}
	if r.Status != nil {
		status := domain.InspectionStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// AssignAuditorRequest selects the auditor slot to claim.
type AssignAuditorRequest struct {
	Slot int `json:"slot"`
}

// InspectionResponse is the wire form of an inspection.
type InspectionResponse struct {
	ID            string    `json:"id"`
	LocationID    string    `json:"location_id"`
	DepartmentID  string    `json:"department_id"`
	LocationName  string    `json:"location_name"`
	Supervisor    string    `json:"supervisor"`
	ContactNumber string    `json:"contact_number"`
	Date          time.Time `json:"date"`
	Auditor1      *string   `json:"auditor1,omitempty"`
	Auditor2      *string   `json:"auditor2,omitempty"`
	Status        string    `json:"status"`
}

// NewInspectionResponse maps a domain inspection.
func NewInspectionResponse(ins domain.Inspection) InspectionResponse {
	return InspectionResponse{
		ID:            ins.ID,
		LocationID:    ins.LocationID,
		DepartmentID:  ins.DepartmentID,
		LocationName:  ins.LocationName,
		Supervisor:    ins.Supervisor,
		ContactNumber: ins.ContactNumber,
		Date:          ins.Date,
		Auditor1:      ins.Auditor1,
		Auditor2:      ins.Auditor2,
		Status:        string(ins.Status),
	}
}

// NewInspectionList maps a snapshot, preserving date order.
func NewInspectionList(inspections []domain.Inspection) []InspectionResponse {
	out := make([]InspectionResponse, len(inspections))
	for i, ins := range inspections {
		out[i] = NewInspectionResponse(ins)
	}
	return out
}
