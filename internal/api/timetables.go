package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

// GenerateOutcome is the result of a generation request: exactly one of
// Variants or Infeasible is set.
type GenerateOutcome struct {
	Variants   []models.Timetable
	Infeasible *models.Infeasibility
}

type generateRequest struct {
	NumVariants int `json:"num_variants"`
}

// Generate asks the solver for up to count draft variants. The backend
// answers with either a variant list or an infeasibility diagnostic; both
// are success responses on the wire, so the payload shape decides.
func (c *Client) Generate(ctx context.Context, count int) (GenerateOutcome, error) {
	data, err := c.doRaw(ctx, http.MethodPost, "/timetables/generate/", nil, generateRequest{NumVariants: count})
	if err != nil {
		return GenerateOutcome{}, err
	}

	var diag models.Infeasibility
	if err := json.Unmarshal(data, &diag); err == nil && diag.Error != "" {
		return GenerateOutcome{Infeasible: &diag}, nil
	}

	var variants []models.Timetable
	if err := json.Unmarshal(data, &variants); err != nil {
		return GenerateOutcome{}, fmt.Errorf("failed to decode generation response: %w", err)
	}
	return GenerateOutcome{Variants: variants}, nil
}

// ListTimetables returns all timetables visible to the current actor,
// optionally filtered by status.
func (c *Client) ListTimetables(ctx context.Context, status constants.Status) ([]models.Timetable, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{string(status)}}
	}
	var list []models.Timetable
	if err := c.do(ctx, http.MethodGet, "/timetables/", query, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetTimetable fetches a single timetable with its periods.
func (c *Client) GetTimetable(ctx context.Context, id int) (models.Timetable, error) {
	var tt models.Timetable
	if err := c.do(ctx, http.MethodGet, "/timetables/"+strconv.Itoa(id)+"/", nil, nil, &tt); err != nil {
		return models.Timetable{}, err
	}
	return tt, nil
}

// SendForApproval moves a draft timetable into the pending queue.
func (c *Client) SendForApproval(ctx context.Context, id int) (models.Timetable, error) {
	var tt models.Timetable
	if err := c.do(ctx, http.MethodPost, "/timetables/"+strconv.Itoa(id)+"/send-for-approval/", nil, nil, &tt); err != nil {
		return models.Timetable{}, err
	}
	return tt, nil
}

type approvalRequest struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// Approve records an approval decision on a pending timetable. approved
// false rejects it. The comment may be empty.
func (c *Client) Approve(ctx context.Context, id int, approved bool, comment string) (models.Timetable, error) {
	var tt models.Timetable
	req := approvalRequest{Approved: approved, Comment: comment}
	if err := c.do(ctx, http.MethodPost, "/timetables/"+strconv.Itoa(id)+"/approve/", nil, req, &tt); err != nil {
		return models.Timetable{}, err
	}
	return tt, nil
}

// ExportPDF fetches the base64-encoded PDF rendering of a timetable.
func (c *Client) ExportPDF(ctx context.Context, id int) (models.Artifact, error) {
	var art models.Artifact
	if err := c.do(ctx, http.MethodGet, "/timetables/"+strconv.Itoa(id)+"/pdf/", nil, nil, &art); err != nil {
		return models.Artifact{}, err
	}
	return art, nil
}

// ExportCSV fetches the base64-encoded CSV rendering of a timetable.
func (c *Client) ExportCSV(ctx context.Context, id int) (models.Artifact, error) {
	var art models.Artifact
	if err := c.do(ctx, http.MethodGet, "/timetables/"+strconv.Itoa(id)+"/csv/", nil, nil, &art); err != nil {
		return models.Artifact{}, err
	}
	return art, nil
}

// GetPublicTimetable fetches a published timetable by its public slug.
// No token is required.
func (c *Client) GetPublicTimetable(ctx context.Context, slug string) (models.Timetable, error) {
	var tt models.Timetable
	if err := c.do(ctx, http.MethodGet, "/timetables/public/"+url.PathEscape(slug)+"/", nil, nil, &tt); err != nil {
		return models.Timetable{}, err
	}
	return tt, nil
}
