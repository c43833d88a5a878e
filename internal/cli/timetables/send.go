package timetables

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
)

type SendCmd struct {
	ID int `arg:"" help:"Draft timetable ID to send for approval."`
}

func (c *SendCmd) Validate() error {
	if c.ID < 1 {
		return fmt.Errorf("timetable id must be positive")
	}
	return nil
}

func (c *SendCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}

	tt, err := appCtx.Generator.SendForApproval(ctx, c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Timetable #%d sent for approval (now %s).\n", tt.ID, cli.FormatStatus(tt.Status))
	return nil
}
