package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.state {
	case constants.StateLogin, constants.StateOTP:
		b.WriteString(m.loginView())
	case constants.StateGenerator:
		b.WriteString(m.generatorView())
	case constants.StateApproval:
		b.WriteString(m.approvalView())
	case constants.StateApprovalComment:
		b.WriteString(m.commentView())
	default:
		b.WriteString(m.viewerView())
	}

	b.WriteString("\n")
	if m.notification != nil {
		style, ok := notifyStyles[m.notification.Level]
		if !ok {
			style = notifyStyles[constants.NotifyInfo]
		}
		b.WriteString(style.Render(m.notification.Message))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) headerView() string {
	title := titleStyle.Render("smarttimetable")
	if m.busy {
		title += " " + m.spinner.View()
	}
	if actor := m.services.Session.Actor(); actor != nil {
		title += dimStyle.Render(fmt.Sprintf("  %s (%s)", actor.Email, actor.Role))
	}
	return title
}

func (m Model) loginView() string {
	var b strings.Builder
	if m.state == constants.StateOTP {
		b.WriteString(dimStyle.Render("Enter the code sent to " + m.loginForm.Email))
		b.WriteString("\n\n")
	}
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	return b.String()
}

func (m Model) generatorView() string {
	var b strings.Builder

	if m.infeasible != nil {
		b.WriteString(dangerStyle.Render("Generation infeasible: " + m.infeasible.Error))
		b.WriteString("\n")
		for _, s := range m.infeasible.Suggestions {
			b.WriteString(warningStyle.Render("  • " + s.Message))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("adjust master data and press g to retry"))
		return b.String()
	}

	variants := m.services.Generator.Variants()
	if len(variants) == 0 {
		b.WriteString(dimStyle.Render("No variants yet. Press g to generate."))
		return b.String()
	}

	tabs := make([]string, len(variants))
	for i, v := range variants {
		label := fmt.Sprintf("Variant %d (#%d)", i+1, v.ID)
		if i == m.variantTab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(m.gridHeader())
	b.WriteString("\n")
	b.WriteString(m.grid.View())
	return b.String()
}

func (m Model) approvalView() string {
	var b strings.Builder

	if m.selected != nil {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Timetable #%d", m.selected.ID)))
		b.WriteString(dimStyle.Render("  esc to go back"))
		b.WriteString("\n")
		b.WriteString(m.gridHeader())
		b.WriteString("\n")
		b.WriteString(m.grid.View())
		return b.String()
	}

	b.WriteString(titleStyle.Render("Pending approval"))
	b.WriteString("\n\n")
	if len(m.pending) == 0 {
		b.WriteString(dimStyle.Render("Queue is empty. Press r to refresh."))
		return b.String()
	}
	for i, tt := range m.pending {
		line := timetableLine(tt)
		if i == m.pendingCursor {
			b.WriteString(selectedRowStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) commentView() string {
	var b strings.Builder
	action := "Approve"
	if !m.approveAction {
		action = "Reject"
	}
	if m.selected != nil {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s timetable #%d", action, m.selected.ID)))
		b.WriteString("\n\n")
	}
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	return b.String()
}

func (m Model) viewerView() string {
	var b strings.Builder

	tabs := make([]string, len(statusTabs))
	for i, status := range statusTabs {
		label := titleCase(string(status))
		if i == m.statusTab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if m.selected != nil {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Timetable #%d", m.selected.ID)))
		if m.selected.PublicURL != "" {
			b.WriteString(dimStyle.Render("  " + m.selected.PublicURL))
		}
		b.WriteString("\n")
		b.WriteString(m.gridHeader())
		b.WriteString("\n")
		b.WriteString(m.grid.View())
		return b.String()
	}

	if len(m.timetables) == 0 {
		b.WriteString(dimStyle.Render("Nothing here. Press r to refresh."))
		return b.String()
	}
	for i, tt := range m.timetables {
		line := timetableLine(tt)
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// gridHeader shows the active grouping so the b/up/down keys make sense.
func (m Model) gridHeader() string {
	return dimStyle.Render(fmt.Sprintf("grouped by %s: %s", m.grid.Dimension(), m.grid.Key()))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func timetableLine(tt models.Timetable) string {
	line := fmt.Sprintf("#%d  v%d  %s", tt.ID, tt.Version, tt.Status)
	if tt.CreatedBy != 0 {
		line += fmt.Sprintf("  by user %d", tt.CreatedBy)
	}
	if tt.Comment != "" {
		line += dimStyle.Render("  (" + tt.Comment + ")")
	}
	return line
}
