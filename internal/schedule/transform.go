// Package schedule turns a timetable's raw period list into the grouped,
// filtered and colored form the views render. Everything here is pure:
// the same input always produces the same output.
package schedule

import (
	"fmt"
	"sort"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

// Event is the calendar projection of one period: a one-hour block on a
// weekday with display metadata.
type Event struct {
	ID    int
	Day   int    // 0=Monday .. 5=Saturday
	Start string // HH:MM
	End   string // HH:MM
	Title string // "CODE - Faculty Name"
	Color string // hex palette entry derived from the batch name

	Batch   string
	Subject string
	Faculty string
	Room    string
}

// groupName extracts the display name for the grouping dimension.
// Groups are keyed by display name, not entity id; two entities sharing a
// name collapse into one group. Kept as a known limitation of the system.
func groupName(p models.Period, dim constants.GroupDimension) string {
	switch dim {
	case constants.GroupByRoom:
		return p.Room.Name
	case constants.GroupByFaculty:
		return p.Faculty.Name
	default:
		return p.Batch.Name
	}
}

// Group partitions periods by the display name of the chosen dimension.
func Group(periods []models.Period, dim constants.GroupDimension) map[string][]models.Period {
	groups := make(map[string][]models.Period)
	for _, p := range periods {
		name := groupName(p, dim)
		groups[name] = append(groups[name], p)
	}
	return groups
}

// Keys returns the sorted, de-duplicated group keys for the dimension.
func Keys(periods []models.Period, dim constants.GroupDimension) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range periods {
		name := groupName(p, dim)
		if !seen[name] {
			seen[name] = true
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// DefaultKey is the group preselected when the caller has not chosen one:
// the first batch key, regardless of which dimension is being rendered.
// Empty input yields no default.
func DefaultKey(periods []models.Period) string {
	keys := Keys(periods, constants.GroupByBatch)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// Events projects the periods of one group into calendar events. key
// selects the group under dim; an unknown key yields no events.
func Events(periods []models.Period, dim constants.GroupDimension, key string) []Event {
	group := Group(periods, dim)[key]
	events := make([]Event, 0, len(group))
	for _, p := range group {
		events = append(events, toEvent(p))
	}
	return events
}

func toEvent(p models.Period) Event {
	day := p.Day
	if day < 0 || day >= constants.DaysPerWeek {
		// Out-of-range days render on Monday rather than being dropped.
		day = 0
	}
	start := constants.FirstPeriodHour + (p.PeriodNo - 1)
	return Event{
		ID:      p.ID,
		Day:     day,
		Start:   fmt.Sprintf("%02d:00", start),
		End:     fmt.Sprintf("%02d:00", start+1),
		Title:   fmt.Sprintf("%s - %s", p.Subject.Code, p.Faculty.Name),
		Color:   ColorFor(p.Batch.Name),
		Batch:   p.Batch.Name,
		Subject: p.Subject.Name,
		Faculty: p.Faculty.Name,
		Room:    p.Room.Name,
	}
}

// ColorFor assigns a palette color to a batch name by summing its
// character code points modulo the palette size. Identical names always
// get identical colors; collisions between different names are expected.
func ColorFor(name string) string {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return constants.BatchPalette[sum%len(constants.BatchPalette)]
}

// DayName returns the display name for a day index, with a literal
// fallback for out-of-range values.
func DayName(day int) string {
	if day < 0 || day >= constants.DaysPerWeek {
		return fmt.Sprintf("Day %d", day)
	}
	return constants.DayNames[day]
}
