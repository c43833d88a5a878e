package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mlsaran/smarttimetable/internal/cli"
)

type LoginCmd struct {
	Email string `arg:"" help:"Account email address."`
	Code  string `short:"c" help:"One-time code received by email. When omitted, a code is requested and prompted for."`
}

func (c *LoginCmd) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("email must not be empty")
	}
	return nil
}

func (c *LoginCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()

	code := strings.TrimSpace(c.Code)
	if code == "" {
		if err := appCtx.Session.RequestCode(ctx, c.Email); err != nil {
			return err
		}
		fmt.Printf("A one-time code has been sent to %s.\n", c.Email)

		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("One-time code").
				Placeholder("123456").
				Value(&code).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("code is required")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("login canceled: %w", err)
		}
	}

	actor, landing, err := appCtx.Session.VerifyCode(ctx, c.Email, code)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s).\n", actor.Email, actor.Role)
	fmt.Printf("Your landing view is %q; run 'smarttimetable tui' to open it.\n", landing)
	return nil
}
