package masters

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/models"
)

type BatchListCmd struct{}

func (c *BatchListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	batches, err := appCtx.Client.ListBatches(ctx)
	if err != nil {
		return err
	}
	for _, b := range batches {
		fmt.Printf("#%-4d %-24s semester %d, %d students\n", b.ID, b.Name, b.Semester, b.Size)
	}
	return nil
}

type BatchAddCmd struct {
	Name     string `arg:"" help:"Batch name."`
	Size     int    `short:"s" help:"Number of students." required:""`
	Semester int    `help:"Semester number." required:""`
}

func (c *BatchAddCmd) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be positive")
	}
	if c.Semester < 1 {
		return fmt.Errorf("semester must be positive")
	}
	return nil
}

func (c *BatchAddCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	b, err := appCtx.Client.CreateBatch(ctx, models.Batch{Name: c.Name, Size: c.Size, Semester: c.Semester})
	if err != nil {
		return err
	}
	fmt.Printf("Created batch #%d %s\n", b.ID, b.Name)
	return nil
}

type BatchDeleteCmd struct {
	ID int `arg:"" help:"Batch ID."`
}

func (c *BatchDeleteCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	if err := appCtx.Client.DeleteBatch(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted batch #%d\n", c.ID)
	return nil
}
