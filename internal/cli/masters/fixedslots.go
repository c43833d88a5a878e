package masters

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
	"github.com/mlsaran/smarttimetable/internal/schedule"
)

type FixedSlotListCmd struct{}

func (c *FixedSlotListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	slots, err := appCtx.Client.ListFixedSlots(ctx)
	if err != nil {
		return err
	}
	for _, fs := range slots {
		fmt.Printf("#%-4d %-10s period %d  batch %d  subject %d\n",
			fs.ID, schedule.DayName(fs.Day), fs.PeriodNo, fs.BatchID, fs.SubjectID)
	}
	return nil
}

type FixedSlotAddCmd struct {
	Day     int `arg:"" help:"Day index, 0=Monday .. 5=Saturday."`
	Period  int `arg:"" help:"Period number (1-8)."`
	Batch   int `short:"b" help:"Batch ID." required:""`
	Subject int `short:"s" help:"Subject ID." required:""`
	Room    int `short:"r" help:"Optional room ID."`
	Faculty int `short:"f" help:"Optional faculty ID."`
}

func (c *FixedSlotAddCmd) Validate() error {
	if c.Day < 0 || c.Day >= constants.DaysPerWeek {
		return fmt.Errorf("day must be between 0 and %d", constants.DaysPerWeek-1)
	}
	if c.Period < 1 || c.Period > constants.PeriodsPerDay {
		return fmt.Errorf("period must be between 1 and %d", constants.PeriodsPerDay)
	}
	return nil
}

func (c *FixedSlotAddCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	fs, err := appCtx.Client.CreateFixedSlot(ctx, models.FixedSlot{
		Day:       c.Day,
		PeriodNo:  c.Period,
		BatchID:   c.Batch,
		SubjectID: c.Subject,
		RoomID:    c.Room,
		FacultyID: c.Faculty,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created fixed slot #%d (%s period %d)\n", fs.ID, schedule.DayName(fs.Day), fs.PeriodNo)
	return nil
}

type FixedSlotDeleteCmd struct {
	ID int `arg:"" help:"Fixed slot ID."`
}

func (c *FixedSlotDeleteCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	if err := appCtx.Client.DeleteFixedSlot(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted fixed slot #%d\n", c.ID)
	return nil
}
