package timetables

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/artifact"
	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/models"
)

type ExportCmd struct {
	ID     int    `arg:"" help:"Timetable ID."`
	Format string `short:"f" help:"Export format (pdf|csv)." enum:"pdf,csv" default:"pdf"`
	Out    string `short:"o" help:"Directory to save into. Defaults to the configured download dir."`
}

func (c *ExportCmd) Validate() error {
	if c.ID < 1 {
		return fmt.Errorf("timetable id must be positive")
	}
	return nil
}

func (c *ExportCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	// Published timetables export without a token, so a missing session is
	// not fatal here; the backend decides.
	appCtx.RestoreSession(ctx)

	var (
		art models.Artifact
		err error
	)
	if c.Format == "csv" {
		art, err = appCtx.Client.ExportCSV(ctx, c.ID)
	} else {
		art, err = appCtx.Client.ExportPDF(ctx, c.ID)
	}
	if err != nil {
		return err
	}

	dir := c.Out
	if dir == "" {
		dir = appCtx.Config.DownloadDir
	}
	path, err := artifact.Save(art, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}
