package auth

import (
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
)

type LogoutCmd struct{}

func (c *LogoutCmd) Run(appCtx *cli.Context) error {
	appCtx.Session.Logout()
	fmt.Println("Logged out.")
	return nil
}
