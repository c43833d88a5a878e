package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	tests := []struct {
		field   string
		message string
		want    string
	}{
		{"count", "must be at least 1", "count: must be at least 1"},
		{"", "something went wrong", "something went wrong"},
	}
	for _, tc := range tests {
		err := NewValidation(tc.field, tc.message)
		if got := err.Error(); got != tc.want {
			t.Errorf("NewValidation(%q, %q).Error() = %q, want %q", tc.field, tc.message, got, tc.want)
		}
	}
}

func TestValidationErrorMatchesWithAs(t *testing.T) {
	err := fmt.Errorf("generating: %w", NewValidation("count", "must be at least 1"))
	var verr *ValidationError
	if !stderrors.As(err, &verr) {
		t.Fatal("expected wrapped ValidationError to match errors.As")
	}
	if verr.Field != "count" {
		t.Errorf("expected field %q, got %q", "count", verr.Field)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(stderrors.New("boom")); got != "Error: boom" {
		t.Errorf("Format = %q, want %q", got, "Error: boom")
	}
}
