package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mlsaran/smarttimetable/internal/models"
)

// Master-data endpoints. These are opaque collaborators as far as the
// workflow core is concerned: plain CRUD with no client-side logic.

func (c *Client) ListRooms(ctx context.Context) ([]models.Room, error) {
	var out []models.Room
	err := c.do(ctx, http.MethodGet, "/rooms/", nil, nil, &out)
	return out, err
}

func (c *Client) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	var out models.Room
	err := c.do(ctx, http.MethodPost, "/rooms/", nil, room, &out)
	return out, err
}

func (c *Client) DeleteRoom(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/rooms/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) ListFaculty(ctx context.Context) ([]models.Faculty, error) {
	var out []models.Faculty
	err := c.do(ctx, http.MethodGet, "/faculty/", nil, nil, &out)
	return out, err
}

func (c *Client) CreateFaculty(ctx context.Context, f models.Faculty) (models.Faculty, error) {
	var out models.Faculty
	err := c.do(ctx, http.MethodPost, "/faculty/", nil, f, &out)
	return out, err
}

func (c *Client) DeleteFaculty(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/faculty/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) ListBatches(ctx context.Context) ([]models.Batch, error) {
	var out []models.Batch
	err := c.do(ctx, http.MethodGet, "/batches/", nil, nil, &out)
	return out, err
}

func (c *Client) CreateBatch(ctx context.Context, b models.Batch) (models.Batch, error) {
	var out models.Batch
	err := c.do(ctx, http.MethodPost, "/batches/", nil, b, &out)
	return out, err
}

func (c *Client) DeleteBatch(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/batches/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var out []models.Subject
	err := c.do(ctx, http.MethodGet, "/subjects/", nil, nil, &out)
	return out, err
}

func (c *Client) CreateSubject(ctx context.Context, s models.Subject) (models.Subject, error) {
	var out models.Subject
	err := c.do(ctx, http.MethodPost, "/subjects/", nil, s, &out)
	return out, err
}

func (c *Client) DeleteSubject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/subjects/"+strconv.Itoa(id), nil, nil, nil)
}

func (c *Client) ListFixedSlots(ctx context.Context) ([]models.FixedSlot, error) {
	var out []models.FixedSlot
	err := c.do(ctx, http.MethodGet, "/fixed-slots/", nil, nil, &out)
	return out, err
}

func (c *Client) CreateFixedSlot(ctx context.Context, fs models.FixedSlot) (models.FixedSlot, error) {
	var out models.FixedSlot
	err := c.do(ctx, http.MethodPost, "/fixed-slots/", nil, fs, &out)
	return out, err
}

func (c *Client) DeleteFixedSlot(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/fixed-slots/"+strconv.Itoa(id), nil, nil, nil)
}
