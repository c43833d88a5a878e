package timetables

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/constants"
)

type PublicCmd struct {
	Slug    string `arg:"" help:"Public URL slug of a published timetable."`
	GroupBy string `short:"g" help:"Grouping dimension (batch|room|faculty)." enum:"batch,room,faculty" default:"batch"`
	Key     string `short:"k" help:"Group to display. Defaults to the first batch."`
}

func (c *PublicCmd) Validate() error {
	if strings.TrimSpace(c.Slug) == "" {
		return fmt.Errorf("slug must not be empty")
	}
	return nil
}

// Run views a published timetable anonymously; no session is needed.
func (c *PublicCmd) Run(appCtx *cli.Context) error {
	tt, err := appCtx.Client.GetPublicTimetable(context.Background(), c.Slug)
	if err != nil {
		return err
	}
	PrintTimetable(tt, constants.GroupDimension(c.GroupBy), c.Key)
	return nil
}
