package masters

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/models"
)

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	subjects, err := appCtx.Client.ListSubjects(ctx)
	if err != nil {
		return err
	}
	for _, s := range subjects {
		fmt.Printf("#%-4d %-8s %-28s %-8s %d periods/week\n", s.ID, s.Code, s.Name, s.Type, s.PeriodsPerWeek)
	}
	return nil
}

type SubjectAddCmd struct {
	Code           string `arg:"" help:"Subject code (e.g. CS101)."`
	Name           string `arg:"" help:"Subject name."`
	Type           string `short:"t" help:"Subject type (lecture|lab)." enum:"lecture,lab" default:"lecture"`
	PeriodsPerWeek int    `short:"p" help:"Periods per week (1-10)." default:"3"`
}

func (c *SubjectAddCmd) Validate() error {
	if c.PeriodsPerWeek < 1 || c.PeriodsPerWeek > 10 {
		return fmt.Errorf("periods per week must be between 1 and 10")
	}
	return nil
}

func (c *SubjectAddCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	s, err := appCtx.Client.CreateSubject(ctx, models.Subject{
		Code:           c.Code,
		Name:           c.Name,
		Type:           c.Type,
		PeriodsPerWeek: c.PeriodsPerWeek,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created subject #%d %s %s\n", s.ID, s.Code, s.Name)
	return nil
}

type SubjectDeleteCmd struct {
	ID int `arg:"" help:"Subject ID."`
}

func (c *SubjectDeleteCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	if err := appCtx.Client.DeleteSubject(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted subject #%d\n", c.ID)
	return nil
}
