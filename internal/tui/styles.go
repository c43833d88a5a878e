package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mlsaran/smarttimetable/internal/constants"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	notifyStyles = map[constants.NotifyLevel]lipgloss.Style{
		constants.NotifySuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Padding(0, 1).
			Bold(true),
		constants.NotifyError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1).
			Bold(true),
		constants.NotifyWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 1),
		constants.NotifyInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1),
	}
)
