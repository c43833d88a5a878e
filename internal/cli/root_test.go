package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

func TestFormatStatus(t *testing.T) {
	if got := FormatStatus(constants.StatusPending); got != "pending approval" {
		t.Errorf("FormatStatus(pending) = %q", got)
	}
	if got := FormatStatus(constants.StatusDraft); got != "draft" {
		t.Errorf("FormatStatus(draft) = %q", got)
	}
}

func TestFormatTimestampZero(t *testing.T) {
	if got := FormatTimestamp(time.Time{}); got != "-" {
		t.Errorf("zero timestamp should render as dash, got %q", got)
	}
}

func TestSummaryLine(t *testing.T) {
	tt := models.Timetable{
		ID:      7,
		Version: 2,
		Status:  constants.StatusPending,
		Periods: make([]models.Period, 12),
	}
	line := SummaryLine(tt)
	for _, want := range []string{"#7", "v2", "pending approval", "12 periods"} {
		if !strings.Contains(line, want) {
			t.Errorf("summary %q missing %q", line, want)
		}
	}
}
