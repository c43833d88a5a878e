// Package generator orchestrates timetable generation requests and local
// variant selection. Infeasibility is a rendered outcome, not an error:
// only transport and backend failures propagate as errors.
package generator

import (
	"context"

	"github.com/mlsaran/smarttimetable/internal/api"
	"github.com/mlsaran/smarttimetable/internal/errors"
	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/models"
	"github.com/mlsaran/smarttimetable/internal/workflow"
)

// Backend is the slice of the API the coordinator needs.
type Backend interface {
	Generate(ctx context.Context, count int) (api.GenerateOutcome, error)
}

// Coordinator holds the transient variant set produced by the last
// generation run. It is view-local state: clearing it never touches the
// network, and the drafts themselves live on in the backend.
type Coordinator struct {
	backend  Backend
	workflow *workflow.Engine

	variants []models.Timetable
	active   int
}

// New creates a coordinator.
func New(backend Backend, wf *workflow.Engine) *Coordinator {
	return &Coordinator{backend: backend, workflow: wf}
}

// Generate requests count variants. count must be at least 1; no upper
// bound is assumed here, the views impose their own. On success the
// variant list replaces any previous one with the active index reset to 0.
// An infeasible run clears the variants and returns the diagnostic.
func (c *Coordinator) Generate(ctx context.Context, count int) (*models.Infeasibility, error) {
	if count < 1 {
		return nil, errors.NewValidation("variants", "variant count must be at least 1")
	}

	outcome, err := c.backend.Generate(ctx, count)
	if err != nil {
		return nil, err
	}

	if outcome.Infeasible != nil {
		c.variants = nil
		c.active = 0
		logger.Info("Generation infeasible", "suggestions", len(outcome.Infeasible.Suggestions))
		return outcome.Infeasible, nil
	}

	c.variants = outcome.Variants
	c.active = 0
	logger.Info("Variants generated", "requested", count, "received", len(outcome.Variants))
	return nil, nil
}

// Variants returns the current variant set.
func (c *Coordinator) Variants() []models.Timetable {
	return c.variants
}

// Active returns the currently selected variant, or nil when none exist.
func (c *Coordinator) Active() *models.Timetable {
	if len(c.variants) == 0 {
		return nil
	}
	return &c.variants[c.active]
}

// ActiveIndex returns the selected variant index.
func (c *Coordinator) ActiveIndex() int {
	return c.active
}

// SetActive switches the selected variant. Purely local: no request goes
// out. Out-of-range indices are ignored.
func (c *Coordinator) SetActive(index int) {
	if index >= 0 && index < len(c.variants) {
		c.active = index
	}
}

// Clear drops the variant set, e.g. on view teardown. Local state only.
func (c *Coordinator) Clear() {
	c.variants = nil
	c.active = 0
}

// SendForApproval hands the given variant to the workflow engine and, on
// success, removes the whole variant set locally: the generator view is
// done with it. Returns the updated timetable.
func (c *Coordinator) SendForApproval(ctx context.Context, id int) (models.Timetable, error) {
	outcome, err := c.workflow.SendForApproval(ctx, id)
	if err != nil {
		return models.Timetable{}, err
	}
	c.Clear()
	return *outcome.Updated, nil
}
