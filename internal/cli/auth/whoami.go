package auth

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/session"
)

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(appCtx *cli.Context) error {
	appCtx.RestoreSession(context.Background())
	actor := appCtx.Session.Actor()
	if actor == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (%s), landing view %q\n", actor.Email, actor.Role, session.LandingView(actor.Role))
	return nil
}
