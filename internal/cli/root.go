package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/mlsaran/smarttimetable/internal/api"
	"github.com/mlsaran/smarttimetable/internal/cache"
	"github.com/mlsaran/smarttimetable/internal/config"
	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/generator"
	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/models"
	"github.com/mlsaran/smarttimetable/internal/session"
	"github.com/mlsaran/smarttimetable/internal/workflow"
)

// ErrNotLoggedIn is returned by commands that need an authenticated actor
// when no session could be restored.
var ErrNotLoggedIn = stderrors.New("not logged in, run 'smarttimetable login <email>' first")

// Context carries the wired application services into every command.
type Context struct {
	Config    config.Config
	Client    *api.Client
	Session   *session.Store
	Cache     *cache.Store
	Workflow  *workflow.Engine
	Generator *generator.Coordinator

	restored bool
}

// RequireAuth restores the persisted session once and fails if the result
// is anonymous.
func (c *Context) RequireAuth(ctx context.Context) error {
	c.RestoreSession(ctx)
	if !c.Session.Authenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

// RestoreSession restores the persisted session at most once per process.
func (c *Context) RestoreSession(ctx context.Context) {
	if c.restored {
		return
	}
	c.restored = true
	c.Session.Restore(ctx)
}

// LoadTimetable fetches a timetable, writing through to the cache on
// success. With offline set, the cache is read instead of the network.
func (c *Context) LoadTimetable(ctx context.Context, id int, offline bool) (models.Timetable, error) {
	if offline {
		tt, fetched, err := c.Cache.Get(id)
		if err != nil {
			return models.Timetable{}, err
		}
		logger.Info("Serving timetable from cache", "id", id, "fetched_at", fetched.Format(time.RFC3339))
		return tt, nil
	}

	tt, err := c.Client.GetTimetable(ctx, id)
	if err != nil {
		return models.Timetable{}, err
	}
	if cacheErr := c.Cache.Put(tt); cacheErr != nil {
		// Cache failures never block the workflow.
		logger.Warn("Failed to cache timetable", "id", id, "error", cacheErr)
	}
	return tt, nil
}

// FormatStatus renders a status for list output.
func FormatStatus(s constants.Status) string {
	if s == constants.StatusPending {
		return "pending approval"
	}
	return string(s)
}

// FormatTimestamp renders a timestamp for table output.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(constants.DateTimeFormat)
}

// SummaryLine renders the one-line form of a timetable used by list views.
func SummaryLine(tt models.Timetable) string {
	return fmt.Sprintf("#%-4d v%-3d %-17s %s  (%d periods)",
		tt.ID, tt.Version, FormatStatus(tt.Status), FormatTimestamp(tt.CreatedAt), len(tt.Periods))
}
