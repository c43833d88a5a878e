package timetables

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/workflow"
)

type ApproveCmd struct {
	ID      int    `arg:"" help:"Pending timetable ID."`
	Comment string `short:"m" help:"Optional comment recorded with the decision."`
}

func (c *ApproveCmd) Validate() error {
	if c.ID < 1 {
		return fmt.Errorf("timetable id must be positive")
	}
	return nil
}

func (c *ApproveCmd) Run(appCtx *cli.Context) error {
	return decide(appCtx, c.ID, c.Comment, true)
}

type RejectCmd struct {
	ID      int    `arg:"" help:"Pending timetable ID."`
	Comment string `short:"m" help:"Optional comment recorded with the decision."`
}

func (c *RejectCmd) Validate() error {
	if c.ID < 1 {
		return fmt.Errorf("timetable id must be positive")
	}
	return nil
}

func (c *RejectCmd) Run(appCtx *cli.Context) error {
	return decide(appCtx, c.ID, c.Comment, false)
}

func decide(appCtx *cli.Context, id int, comment string, approved bool) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}

	var (
		outcome workflow.Outcome
		err     error
	)
	if approved {
		outcome, err = appCtx.Workflow.Approve(ctx, id, comment)
	} else {
		outcome, err = appCtx.Workflow.Reject(ctx, id, comment)
	}
	if err != nil {
		// The queue was reloaded regardless; report whether the item is
		// even still pending (another approver may have raced us).
		if outcome.Queue != nil && !outcome.StillListed(id) {
			return fmt.Errorf("timetable #%d is no longer pending (processed by someone else?): %w", id, err)
		}
		return err
	}

	if approved {
		fmt.Printf("Timetable #%d approved.\n", outcome.Updated.ID)
		if outcome.Updated.PublicURL != "" {
			fmt.Printf("Published at: %s\n", outcome.Updated.PublicURL)
		}
	} else {
		fmt.Printf("Timetable #%d rejected, returned to draft.\n", outcome.Updated.ID)
	}
	fmt.Printf("%d timetable(s) still pending.\n", len(outcome.Queue))
	return nil
}
