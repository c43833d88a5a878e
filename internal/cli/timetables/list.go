package timetables

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/constants"
)

type ListCmd struct {
	Status  string `short:"s" help:"Filter by status (draft|pending|approved)." enum:",draft,pending,approved" default:""`
	Offline bool   `help:"List from the local cache instead of the server."`
}

func (c *ListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	status := constants.Status(c.Status)

	if c.Offline {
		list, err := appCtx.Cache.List(status)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("Local cache is empty.")
			return nil
		}
		for _, tt := range list {
			fmt.Println(cli.SummaryLine(tt))
		}
		return nil
	}

	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	list, err := appCtx.Client.ListTimetables(ctx, status)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No timetables found.")
		return nil
	}
	for _, tt := range list {
		fmt.Println(cli.SummaryLine(tt))
	}
	return nil
}
