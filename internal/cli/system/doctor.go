package system

import (
	"context"
	"fmt"
	"time"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/keyring"
)

type DoctorCmd struct{}

// Run performs health checks: server reachability, keyring availability,
// session validity and cache accessibility.
func (c *DoctorCmd) Run(appCtx *cli.Context) error {
	fmt.Println("smarttimetable doctor")
	fmt.Println()

	ok := true

	fmt.Printf("  Server (%s): ", appCtx.Config.ServerURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := appCtx.Client.GetPublicTimetable(ctx, "doctor-probe"); err == nil {
		fmt.Println("reachable")
	} else if berr, isBackend := backendStatus(err); isBackend {
		// Any HTTP status means the server answered; 404 is the expected
		// reply to the probe slug.
		fmt.Printf("reachable (status %d)\n", berr)
	} else {
		fmt.Printf("UNREACHABLE (%v)\n", err)
		ok = false
	}

	fmt.Print("  OS keyring: ")
	if keyring.IsAvailable() {
		fmt.Println("available")
	} else {
		fmt.Println("unavailable (token file fallback in use)")
	}

	fmt.Print("  Session: ")
	appCtx.RestoreSession(context.Background())
	if actor := appCtx.Session.Actor(); actor != nil {
		fmt.Printf("valid (%s, %s)\n", actor.Email, actor.Role)
	} else {
		fmt.Println("not logged in")
	}

	fmt.Print("  Cache: ")
	if list, err := appCtx.Cache.List(""); err == nil {
		fmt.Printf("ok (%d timetable(s) cached)\n", len(list))
	} else {
		fmt.Printf("ERROR (%v)\n", err)
		ok = false
	}

	fmt.Println()
	if !ok {
		return fmt.Errorf("one or more checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}
