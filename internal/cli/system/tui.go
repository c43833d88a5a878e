package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/tui"
)

type TuiCmd struct{}

// Run launches the interactive application. The persisted session is
// restored first so the initial view matches the actor's role.
func (c *TuiCmd) Run(appCtx *cli.Context) error {
	appCtx.RestoreSession(context.Background())

	model := tui.New(tui.Services{
		Session:   appCtx.Session,
		Client:    appCtx.Client,
		Workflow:  appCtx.Workflow,
		Generator: appCtx.Generator,
		Cache:     appCtx.Cache,
		Config:    appCtx.Config,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
