// Package masters holds the thin CRUD commands for the master data the
// generator consumes. No workflow logic lives here: each command relays
// one backend call and prints the result.
package masters

import (
	"context"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/cli"
	"github.com/mlsaran/smarttimetable/internal/models"
)

type RoomListCmd struct{}

func (c *RoomListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	rooms, err := appCtx.Client.ListRooms(ctx)
	if err != nil {
		return err
	}
	for _, r := range rooms {
		fmt.Printf("#%-4d %-20s %-8s capacity %d\n", r.ID, r.Name, r.Type, r.Capacity)
	}
	return nil
}

type RoomAddCmd struct {
	Name     string `arg:"" help:"Room name."`
	Capacity int    `short:"c" help:"Seating capacity." required:""`
	Type     string `short:"t" help:"Room type (lecture|lab)." enum:"lecture,lab" default:"lecture"`
}

func (c *RoomAddCmd) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be positive")
	}
	return nil
}

func (c *RoomAddCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	room, err := appCtx.Client.CreateRoom(ctx, models.Room{Name: c.Name, Capacity: c.Capacity, Type: c.Type})
	if err != nil {
		return err
	}
	fmt.Printf("Created room #%d %s\n", room.ID, room.Name)
	return nil
}

type RoomDeleteCmd struct {
	ID int `arg:"" help:"Room ID."`
}

func (c *RoomDeleteCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireAuth(ctx); err != nil {
		return err
	}
	if err := appCtx.Client.DeleteRoom(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted room #%d\n", c.ID)
	return nil
}
