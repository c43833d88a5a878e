package main

import (
	"github.com/alecthomas/kong"

	"github.com/mlsaran/smarttimetable/internal/api"
	"github.com/mlsaran/smarttimetable/internal/cache"
	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/cli/auth"
	"github.com/mlsaran/smarttimetable/internal/cli/masters"
	"github.com/mlsaran/smarttimetable/internal/cli/system"
	"github.com/mlsaran/smarttimetable/internal/cli/timetables"
	"github.com/mlsaran/smarttimetable/internal/config"
	apperrors "github.com/mlsaran/smarttimetable/internal/errors"
	"github.com/mlsaran/smarttimetable/internal/generator"
	"github.com/mlsaran/smarttimetable/internal/keyring"
	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/session"
	"github.com/mlsaran/smarttimetable/internal/workflow"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Server  string `help:"Backend base URL override." env:"SMARTTIMETABLE_SERVER"`

	Login  auth.LoginCmd  `cmd:"" help:"Request a one-time code and sign in."`
	Logout auth.LogoutCmd `cmd:"" help:"Discard the stored session."`
	Whoami auth.WhoamiCmd `cmd:"" help:"Show the signed-in account."`

	Tui system.TuiCmd `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Generate timetables.GenerateCmd `cmd:"" help:"Generate draft timetable variants."`

	Timetable struct {
		List    timetables.ListCmd    `cmd:"" help:"List timetables by status."`
		Show    timetables.ShowCmd    `cmd:"" help:"Show one timetable's schedule."`
		Send    timetables.SendCmd    `cmd:"" help:"Send a draft for approval."`
		Approve timetables.ApproveCmd `cmd:"" help:"Approve a pending timetable."`
		Reject  timetables.RejectCmd  `cmd:"" help:"Reject a pending timetable back to draft."`
		Export  timetables.ExportCmd  `cmd:"" help:"Download a timetable as PDF or CSV."`
		Public  timetables.PublicCmd  `cmd:"" help:"Show a published timetable by its share slug."`
	} `cmd:"" help:"Work with timetables."`

	Rooms struct {
		List   masters.RoomListCmd   `cmd:"" help:"List rooms."`
		Add    masters.RoomAddCmd    `cmd:"" help:"Add a room."`
		Delete masters.RoomDeleteCmd `cmd:"" help:"Delete a room."`
	} `cmd:"" help:"Manage room master data."`

	Faculty struct {
		List   masters.FacultyListCmd   `cmd:"" help:"List faculty."`
		Add    masters.FacultyAddCmd    `cmd:"" help:"Add a faculty member."`
		Delete masters.FacultyDeleteCmd `cmd:"" help:"Delete a faculty member."`
	} `cmd:"" help:"Manage faculty master data."`

	Batches struct {
		List   masters.BatchListCmd   `cmd:"" help:"List batches."`
		Add    masters.BatchAddCmd    `cmd:"" help:"Add a batch."`
		Delete masters.BatchDeleteCmd `cmd:"" help:"Delete a batch."`
	} `cmd:"" help:"Manage batch master data."`

	Subjects struct {
		List   masters.SubjectListCmd   `cmd:"" help:"List subjects."`
		Add    masters.SubjectAddCmd    `cmd:"" help:"Add a subject."`
		Delete masters.SubjectDeleteCmd `cmd:"" help:"Delete a subject."`
	} `cmd:"" help:"Manage subject master data."`

	FixedSlots struct {
		List   masters.FixedSlotListCmd   `cmd:"" help:"List fixed slots."`
		Add    masters.FixedSlotAddCmd    `cmd:"" help:"Pin a subject to a slot."`
		Delete masters.FixedSlotDeleteCmd `cmd:"" help:"Delete a fixed slot."`
	} `cmd:"" name:"fixed-slots" help:"Manage fixed slot constraints."`

	Config struct {
		Show system.ConfigShowCmd `cmd:"" help:"Show the effective configuration."`
		Set  system.ConfigSetCmd  `cmd:"" help:"Set a configuration value."`
	} `cmd:"" help:"Inspect and edit configuration."`

	Doctor system.DoctorCmd `cmd:"" help:"Diagnose connectivity, keyring, and cache health."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("smarttimetable"),
		kong.Description("Timetable generation and approval client"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	dir, err := config.Dir()
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Server != "" {
		cfg.ServerURL = CLI.Server
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cfg.Dir}); err != nil {
		apperrors.Fatal(err)
	}

	// The session store and API client reference each other: the client
	// reads its bearer token from the store, the store validates codes
	// through the client. New then Bind breaks the cycle.
	sess := session.New(keyring.New(cfg.Dir))
	client := api.New(cfg.ServerURL, sess)
	sess.Bind(client)

	store := cache.New(cache.DefaultPath(cfg.Dir))
	if err := store.Init(); err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	wf := workflow.New(client, sess)

	appCtx := &cli.Context{
		Config:    cfg,
		Client:    client,
		Session:   sess,
		Cache:     store,
		Workflow:  wf,
		Generator: generator.New(client, wf),
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
