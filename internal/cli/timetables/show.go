package timetables

import (
	"context"
	"fmt"
	"sort"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
	"github.com/mlsaran/smarttimetable/internal/schedule"
)

type ShowCmd struct {
	ID      int    `arg:"" help:"Timetable ID."`
	GroupBy string `short:"g" help:"Grouping dimension (batch|room|faculty)." enum:"batch,room,faculty" default:"batch"`
	Key     string `short:"k" help:"Group to display. Defaults to the first batch."`
	Offline bool   `help:"Read from the local cache instead of the server."`
}

func (c *ShowCmd) Validate() error {
	if c.ID < 1 {
		return fmt.Errorf("timetable id must be positive")
	}
	return nil
}

func (c *ShowCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if !c.Offline {
		if err := appCtx.RequireAuth(ctx); err != nil {
			return err
		}
	}

	tt, err := appCtx.LoadTimetable(ctx, c.ID, c.Offline)
	if err != nil {
		return err
	}

	PrintTimetable(tt, constants.GroupDimension(c.GroupBy), c.Key)
	return nil
}

// PrintTimetable renders a timetable's schedule for one group, shared by
// the show and public commands.
func PrintTimetable(tt models.Timetable, dim constants.GroupDimension, key string) {
	fmt.Printf("Timetable #%d v%d  %s  created %s\n",
		tt.ID, tt.Version, cli.FormatStatus(tt.Status), cli.FormatTimestamp(tt.CreatedAt))
	if tt.ApprovedAt != nil {
		fmt.Printf("Approved %s", cli.FormatTimestamp(*tt.ApprovedAt))
		if tt.Comment != "" {
			fmt.Printf("  comment: %q", tt.Comment)
		}
		fmt.Println()
	}
	if tt.Status == constants.StatusApproved && tt.PublicURL != "" {
		fmt.Printf("Public link: %s\n", tt.PublicURL)
	}
	if tt.Editable() {
		fmt.Println("Draft: regenerate with 'generate' or submit with 'timetable send'.")
	}

	if len(tt.Periods) == 0 {
		fmt.Println("\nNo periods.")
		return
	}

	if key == "" {
		key = schedule.DefaultKey(tt.Periods)
	}
	keys := schedule.Keys(tt.Periods, dim)
	fmt.Printf("\nGrouped by %s: %s  (available: %v)\n\n", dim, key, keys)

	events := schedule.Events(tt.Periods, dim, key)
	sort.Slice(events, func(i, j int) bool {
		if events[i].Day != events[j].Day {
			return events[i].Day < events[j].Day
		}
		return events[i].Start < events[j].Start
	})

	day := -1
	for _, ev := range events {
		if ev.Day != day {
			day = ev.Day
			fmt.Printf("%s\n", schedule.DayName(day))
		}
		fmt.Printf("  %s-%s  %-24s %-20s room %s\n", ev.Start, ev.End, ev.Title, ev.Batch, ev.Room)
	}
}
