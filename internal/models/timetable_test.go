package models

import (
	"testing"

	"github.com/mlsaran/smarttimetable/internal/constants"
)

func TestEditable(t *testing.T) {
	tests := []struct {
		status constants.Status
		want   bool
	}{
		{constants.StatusDraft, true},
		{constants.StatusPending, false},
		{constants.StatusApproved, false},
	}
	for _, tc := range tests {
		tt := Timetable{ID: 1, Status: tc.status}
		if got := tt.Editable(); got != tc.want {
			t.Errorf("Editable() with status %s = %v, want %v", tc.status, got, tc.want)
		}
	}
}
