package dto

import "github.com/spec-kit/inspection-service/internal/domain"

// DepartmentRequest creates or fully describes a department.
type DepartmentRequest struct {
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

// DepartmentPatchRequest applies a partial update.
type DepartmentPatchRequest struct {
	Name    *string `json:"name"`
	Acronym *string `json:"acronym"`
}

// Patch converts the request into a domain patch.
func (r DepartmentPatchRequest) Patch() domain.DepartmentPatch {
	return domain.DepartmentPatch{Name: r.Name, Acronym: r.Acronym}
}

// DepartmentResponse is the wire form of a department.
type DepartmentResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, Acronym: d.Acronym}
}

// NewDepartmentList maps a snapshot.
func NewDepartmentList(depts []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		out[i] = NewDepartmentResponse(d)
	}
	return out
}
