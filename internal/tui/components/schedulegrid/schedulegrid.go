// Package schedulegrid renders the calendar projection of a timetable
// group as a scrollable week grid, one row per period hour.
package schedulegrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
	"github.com/mlsaran/smarttimetable/internal/schedule"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	emptyCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model

	periods []models.Period
	dim     constants.GroupDimension
	key     string
	width   int
	height  int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{
		viewport: vp,
		dim:      constants.GroupByBatch,
		width:    width,
		height:   height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.periods) == 0 {
		return emptyCellStyle.Render("No periods to display.")
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// SetPeriods loads a period set and resets the selected group to the
// default (first batch) unless the current key still exists.
func (m *Model) SetPeriods(periods []models.Period) {
	m.periods = periods
	if !m.keyExists() {
		m.key = schedule.DefaultKey(periods)
	}
	m.render()
}

// Dimension returns the active grouping dimension.
func (m Model) Dimension() constants.GroupDimension { return m.dim }

// Key returns the currently selected group key.
func (m Model) Key() string { return m.key }

// CycleDimension rotates batch -> room -> faculty, keeping the default
// selection rule: the key resets to the first key of the new dimension.
func (m *Model) CycleDimension() {
	switch m.dim {
	case constants.GroupByBatch:
		m.dim = constants.GroupByRoom
	case constants.GroupByRoom:
		m.dim = constants.GroupByFaculty
	default:
		m.dim = constants.GroupByBatch
	}
	keys := schedule.Keys(m.periods, m.dim)
	if len(keys) > 0 {
		m.key = keys[0]
	} else {
		m.key = ""
	}
	m.render()
}

// CycleKey selects the next group key within the active dimension.
func (m *Model) CycleKey(step int) {
	keys := schedule.Keys(m.periods, m.dim)
	if len(keys) == 0 {
		return
	}
	idx := 0
	for i, k := range keys {
		if k == m.key {
			idx = i
			break
		}
	}
	idx = (idx + step + len(keys)) % len(keys)
	m.key = keys[idx]
	m.render()
}

func (m Model) keyExists() bool {
	if m.key == "" {
		return false
	}
	for _, k := range schedule.Keys(m.periods, m.dim) {
		if k == m.key {
			return true
		}
	}
	return false
}

func (m *Model) render() {
	if len(m.periods) == 0 {
		m.viewport.SetContent("")
		return
	}

	events := schedule.Events(m.periods, m.dim, m.key)

	// Index events by (day, start hour) for cell lookup. Later events on
	// the same cell win, mirroring last-write display of overlapping data.
	type cellKey struct {
		day  int
		slot int
	}
	cells := make(map[cellKey]schedule.Event)
	for _, ev := range events {
		var hour int
		fmt.Sscanf(ev.Start, "%d", &hour)
		cells[cellKey{day: ev.Day, slot: hour}] = ev
	}

	colWidth := 18
	if m.width > 0 {
		if w := (m.width - 8) / constants.DaysPerWeek; w > 10 && w < colWidth {
			colWidth = w
		}
	}

	var b strings.Builder

	b.WriteString(captionStyle.Render(fmt.Sprintf("Grouped by %s: %s", m.dim, m.key)))
	b.WriteString("\n\n")

	b.WriteString(timeStyle.Render(fmt.Sprintf("%-7s", "")))
	for day := 0; day < constants.DaysPerWeek; day++ {
		b.WriteString(headerStyle.Width(colWidth).Render(schedule.DayName(day)))
	}
	b.WriteString("\n")

	for p := 1; p <= constants.PeriodsPerDay; p++ {
		hour := constants.FirstPeriodHour + (p - 1)
		b.WriteString(timeStyle.Render(fmt.Sprintf("%02d:00  ", hour)))
		for day := 0; day < constants.DaysPerWeek; day++ {
			ev, ok := cells[cellKey{day: day, slot: hour}]
			if !ok {
				b.WriteString(emptyCellStyle.Width(colWidth).Render("."))
				continue
			}
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ev.Color)).
				Width(colWidth).
				Render(truncate(ev.Title, colWidth-1))
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(captionStyle.Render("[b] group by  [↑/↓] switch " + string(m.dim)))

	m.viewport.SetContent(b.String())
}

func truncate(s string, max int) string {
	if max < 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}
