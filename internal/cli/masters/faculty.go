package masters

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/models"
)

type FacultyListCmd struct{}

func (c *FacultyListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	faculty, err := appCtx.Client.ListFaculty(ctx)
	if err != nil {
		return err
	}
	for _, f := range faculty {
		fmt.Printf("#%-4d %-24s %s\n", f.ID, f.Name, f.Email)
	}
	return nil
}

type FacultyAddCmd struct {
	Name  string `arg:"" help:"Faculty member name."`
	Email string `short:"e" help:"Faculty email address." required:""`
}

func (c *FacultyAddCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	f, err := appCtx.Client.CreateFaculty(ctx, models.Faculty{Name: c.Name, Email: c.Email})
	if err != nil {
		return err
	}
	fmt.Printf("Created faculty #%d %s\n", f.ID, f.Name)
	return nil
}

type FacultyDeleteCmd struct {
	ID int `arg:"" help:"Faculty ID."`
}

func (c *FacultyDeleteCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	if err := appCtx.Client.DeleteFaculty(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted faculty #%d\n", c.ID)
	return nil
}
