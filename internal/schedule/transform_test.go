package schedule

import (
	"reflect"
	"testing"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

func period(id, day, no int, batch, room, faculty, code string) models.Period {
	return models.Period{
		ID:       id,
		Day:      day,
		PeriodNo: no,
		Batch:    models.NamedRef{ID: id * 10, Name: batch},
		Room:     models.NamedRef{ID: id*10 + 1, Name: room},
		Faculty:  models.NamedRef{ID: id*10 + 2, Name: faculty},
		Subject:  models.SubjectRef{ID: id*10 + 3, Code: code, Name: code + " long name"},
	}
}

func TestEventsEmptyInput(t *testing.T) {
	events := Events(nil, constants.GroupByBatch, "CS-A")
	if len(events) != 0 {
		t.Fatalf("expected no events for empty input, got %d", len(events))
	}
	if DefaultKey(nil) != "" {
		t.Errorf("expected empty default key for empty input, got %q", DefaultKey(nil))
	}
	if keys := Keys(nil, constants.GroupByBatch); len(keys) != 0 {
		t.Errorf("expected no keys for empty input, got %v", keys)
	}
}

func TestEventMapping(t *testing.T) {
	p := period(1, 0, 1, "CS-A", "R101", "Dr. Rao", "CS101")
	events := Events([]models.Period{p}, constants.GroupByBatch, "CS-A")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.Day != 0 {
		t.Errorf("expected day 0 (Monday), got %d", ev.Day)
	}
	if ev.Start != "08:00" || ev.End != "09:00" {
		t.Errorf("expected first period to span 08:00-09:00, got %s-%s", ev.Start, ev.End)
	}
	if ev.Title != "CS101 - Dr. Rao" {
		t.Errorf("unexpected title: %q", ev.Title)
	}
	if ev.Color != ColorFor("CS-A") {
		t.Errorf("event color %q does not match batch color %q", ev.Color, ColorFor("CS-A"))
	}
}

func TestEventPeriodTimes(t *testing.T) {
	tests := []struct {
		periodNo int
		start    string
		end      string
	}{
		{1, "08:00", "09:00"},
		{2, "09:00", "10:00"},
		{8, "15:00", "16:00"},
	}
	for _, tc := range tests {
		p := period(1, 2, tc.periodNo, "B", "R", "F", "S")
		ev := toEvent(p)
		if ev.Start != tc.start || ev.End != tc.end {
			t.Errorf("period %d: expected %s-%s, got %s-%s", tc.periodNo, tc.start, tc.end, ev.Start, ev.End)
		}
	}
}

func TestEventOutOfRangeDayRendersOnMonday(t *testing.T) {
	for _, day := range []int{-1, 6, 42} {
		ev := toEvent(period(1, day, 1, "B", "R", "F", "S"))
		if ev.Day != 0 {
			t.Errorf("day %d: expected clamp to 0, got %d", day, ev.Day)
		}
	}
}

func TestColorForDeterministic(t *testing.T) {
	first := ColorFor("CS-A")
	for i := 0; i < 100; i++ {
		if got := ColorFor("CS-A"); got != first {
			t.Fatalf("color changed between calls: %q vs %q", got, first)
		}
	}

	found := false
	for _, c := range constants.BatchPalette {
		if c == first {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("color %q is not a palette entry", first)
	}
}

func TestColorForSumsCodePoints(t *testing.T) {
	// "é" is U+00E9 (233): one code point, two UTF-8 bytes. Hashing must
	// see 233, so accented batch names land on the same palette entry on
	// every client regardless of encoding.
	if got := ColorFor("é"); got != constants.BatchPalette[233%len(constants.BatchPalette)] {
		t.Errorf("expected code-point hashing for %q, got %q", "é", got)
	}
}

func TestColorForEmptyName(t *testing.T) {
	if got := ColorFor(""); got != constants.BatchPalette[0] {
		t.Errorf("expected first palette entry for empty name, got %q", got)
	}
}

func TestKeysSortedAndDeduplicated(t *testing.T) {
	periods := []models.Period{
		period(1, 0, 1, "CS-B", "R1", "F1", "S1"),
		period(2, 0, 2, "CS-A", "R2", "F2", "S2"),
		period(3, 1, 1, "CS-B", "R3", "F3", "S3"),
	}
	got := Keys(periods, constants.GroupByBatch)
	want := []string{"CS-A", "CS-B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
}

func TestDefaultKeyIsFirstBatchRegardlessOfDimension(t *testing.T) {
	periods := []models.Period{
		period(1, 0, 1, "EE-B", "Annex", "F1", "S1"),
		period(2, 0, 2, "CS-A", "Main Hall", "F2", "S2"),
	}
	// The default is batch-derived even when the caller renders by room.
	if got := DefaultKey(periods); got != "CS-A" {
		t.Errorf("expected default key CS-A, got %q", got)
	}
}

func TestGroupCollapsesSharedDisplayNames(t *testing.T) {
	// Two distinct room entities with the same display name land in one
	// group. Grouping is keyed by name, not entity id.
	a := period(1, 0, 1, "CS-A", "Lab", "F1", "S1")
	b := period(2, 0, 2, "CS-B", "Lab", "F2", "S2")
	b.Room.ID = 999

	groups := Group([]models.Period{a, b}, constants.GroupByRoom)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups["Lab"]) != 2 {
		t.Errorf("expected both periods under %q, got %d", "Lab", len(groups["Lab"]))
	}
}

func TestEventsUnknownKey(t *testing.T) {
	periods := []models.Period{period(1, 0, 1, "CS-A", "R1", "F1", "S1")}
	if events := Events(periods, constants.GroupByBatch, "no-such-batch"); len(events) != 0 {
		t.Errorf("expected no events for unknown key, got %d", len(events))
	}
}

func TestEventsIdempotent(t *testing.T) {
	periods := []models.Period{
		period(1, 0, 1, "CS-A", "R1", "F1", "S1"),
		period(2, 3, 4, "CS-A", "R2", "F2", "S2"),
	}
	first := Events(periods, constants.GroupByBatch, "CS-A")
	second := Events(periods, constants.GroupByBatch, "CS-A")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated projection differs:\n%v\n%v", first, second)
	}
}

func TestDayName(t *testing.T) {
	if got := DayName(0); got != "Monday" {
		t.Errorf("expected Monday, got %q", got)
	}
	if got := DayName(5); got != "Saturday" {
		t.Errorf("expected Saturday, got %q", got)
	}
	if got := DayName(7); got != "Day 7" {
		t.Errorf("expected fallback label, got %q", got)
	}
}
