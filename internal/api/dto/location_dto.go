package dto

import "github.com/spec-kit/inspection-service/internal/domain"

// LocationRequest creates a location.
type LocationRequest struct {
	Name          string `json:"name"`
	DepartmentID  string `json:"department_id"`
	Supervisor    string `json:"supervisor"`
	ContactNumber string `json:"contact_number"`
}

// LocationPatchRequest applies a partial update.
type LocationPatchRequest struct {
	Name          *string `json:"name"`
	DepartmentID  *string `json:"department_id"`
	Supervisor    *string `json:"supervisor"`
	ContactNumber *string `json:"contact_number"`
}

// Patch converts the request into a domain patch.
func (r LocationPatchRequest) Patch() domain.LocationPatch {
	return domain.LocationPatch{
		Name:          r.Name,
		DepartmentID:  r.DepartmentID,
		Supervisor:    r.Supervisor,
		ContactNumber: r.ContactNumber,
	}
}

// LocationResponse is the wire form of a location.
type LocationResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DepartmentID  string `json:"department_id"`
	Supervisor    string `json:"supervisor"`
	ContactNumber string `json:"contact_number"`
}

// NewLocationResponse maps a domain location.
func NewLocationResponse(l domain.Location) LocationResponse {
	return LocationResponse{
		ID:            l.ID,
		Name:          l.Name,
		DepartmentID:  l.DepartmentID,
		Supervisor:    l.Supervisor,
		ContactNumber: l.ContactNumber,
	}
}

// NewLocationList maps a snapshot.
func NewLocationList(locs []domain.Location) []LocationResponse {
	out := make([]LocationResponse, len(locs))
	for i, l := range locs {
		out[i] = NewLocationResponse(l)
	}
	return out
}
