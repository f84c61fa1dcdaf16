package domain

import "testing"

func TestInspectionStatusToggle(t *testing.T) {
	if got := InspectionPending.Toggle(); got != InspectionComplete {
		t.Errorf("Pending.Toggle() = %q, want Complete", got)
	}
	if got := InspectionComplete.Toggle(); got != InspectionPending {
		t.Errorf("Complete.Toggle() = %q, want Pending", got)
	}
	// Double toggle restores the original status.
	for _, status := range []InspectionStatus{InspectionPending, InspectionComplete} {
		if got := status.Toggle().Toggle(); got != status {
			t.Errorf("%q.Toggle().Toggle() = %q, want original", status, got)
		}
	}
}
