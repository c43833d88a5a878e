package schedulegrid

import (
	"strings"
	"testing"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

func testPeriods() []models.Period {
	return []models.Period{
		{
			ID: 1, Day: 0, PeriodNo: 1,
			Batch:   models.NamedRef{ID: 1, Name: "CS-A"},
			Room:    models.NamedRef{ID: 1, Name: "R101"},
			Faculty: models.NamedRef{ID: 1, Name: "Dr. Rao"},
			Subject: models.SubjectRef{ID: 1, Code: "CS101", Name: "Intro"},
		},
		{
			ID: 2, Day: 1, PeriodNo: 2,
			Batch:   models.NamedRef{ID: 2, Name: "EE-B"},
			Room:    models.NamedRef{ID: 2, Name: "R202"},
			Faculty: models.NamedRef{ID: 2, Name: "Dr. Iyer"},
			Subject: models.SubjectRef{ID: 2, Code: "EE201", Name: "Circuits"},
		},
	}
}

func TestSetPeriodsSelectsDefaultKey(t *testing.T) {
	m := New(100, 24)
	m.SetPeriods(testPeriods())

	if m.Dimension() != constants.GroupByBatch {
		t.Errorf("expected batch grouping by default, got %s", m.Dimension())
	}
	if m.Key() != "CS-A" {
		t.Errorf("expected first batch preselected, got %q", m.Key())
	}
}

func TestSetPeriodsKeepsSurvivingKey(t *testing.T) {
	m := New(100, 24)
	m.SetPeriods(testPeriods())
	m.CycleKey(1)
	if m.Key() != "EE-B" {
		t.Fatalf("expected EE-B after cycling, got %q", m.Key())
	}

	// Reloading a set that still contains EE-B keeps the selection.
	m.SetPeriods(testPeriods())
	if m.Key() != "EE-B" {
		t.Errorf("surviving key should be kept, got %q", m.Key())
	}

	// Reloading a set without it falls back to the default.
	m.SetPeriods(testPeriods()[:1])
	if m.Key() != "CS-A" {
		t.Errorf("expected fallback to default key, got %q", m.Key())
	}
}

func TestCycleDimensionRotates(t *testing.T) {
	m := New(100, 24)
	m.SetPeriods(testPeriods())

	m.CycleDimension()
	if m.Dimension() != constants.GroupByRoom {
		t.Fatalf("expected room after batch, got %s", m.Dimension())
	}
	if m.Key() != "R101" {
		t.Errorf("expected first room key, got %q", m.Key())
	}

	m.CycleDimension()
	if m.Dimension() != constants.GroupByFaculty {
		t.Fatalf("expected faculty after room, got %s", m.Dimension())
	}

	m.CycleDimension()
	if m.Dimension() != constants.GroupByBatch {
		t.Errorf("expected wrap back to batch, got %s", m.Dimension())
	}
}

func TestCycleKeyWraps(t *testing.T) {
	m := New(100, 24)
	m.SetPeriods(testPeriods())

	m.CycleKey(1)
	m.CycleKey(1)
	if m.Key() != "CS-A" {
		t.Errorf("cycling past the end should wrap, got %q", m.Key())
	}
	m.CycleKey(-1)
	if m.Key() != "EE-B" {
		t.Errorf("cycling backwards should wrap, got %q", m.Key())
	}
}

func TestTruncateRespectsRuneBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"CS101 - Dr. Rao", 30, "CS101 - Dr. Rao"},
		{"CS101 - Dr. Rao", 8, "CS101 -…"},
		{"Génie électrique", 6, "Génie…"},
		{"électrique", 1, "é"},
		{"abc", 0, "abc"},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := New(100, 24)
	if !strings.Contains(m.View(), "No periods") {
		t.Errorf("empty grid should render a placeholder, got %q", m.View())
	}
}
