package timetables

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
)

type GenerateCmd struct {
	Variants int `short:"n" help:"Number of variants to request (1-5 on the dashboard; unbounded here)." default:"3"`
}

func (c *GenerateCmd) Validate() error {
	if c.Variants < 1 {
		return fmt.Errorf("variant count must be at least 1")
	}
	return nil
}

func (c *GenerateCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}

	infeasible, err := appCtx.Generator.Generate(ctx, c.Variants)
	if err != nil {
		return err
	}

	if infeasible != nil {
		fmt.Printf("Generation infeasible: %s\n\n", infeasible.Error)
		fmt.Println("Suggestions to relax the constraints:")
		for _, s := range infeasible.Suggestions {
			fmt.Printf("  - [%s] %s\n      %s\n", s.Type, s.Message, s.Solution)
		}
		return nil
	}

	variants := appCtx.Generator.Variants()
	fmt.Printf("Generated %d variant(s):\n", len(variants))
	for i, v := range variants {
		marker := " "
		if i == appCtx.Generator.ActiveIndex() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, cli.SummaryLine(v))
	}
	fmt.Println("\nUse 'smarttimetable timetable show <id>' to inspect a variant,")
	fmt.Println("or 'smarttimetable timetable send <id>' to send one for approval.")
	return nil
}
