// Package workflow implements the timetable approval state machine:
// draft -> pending -> approved, with rejection reverting a pending
// timetable to draft. The backend is the authority on every transition;
// this engine gates locally by role, issues the call, and always reads
// the relevant queue back so callers render the authoritative state.
package workflow

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/models"
)

// Event is a transition trigger.
type Event string

const (
	EventSendForApproval Event = "send_for_approval"
	EventApprove         Event = "approve"
	EventReject          Event = "reject"
)

// ErrRoleNotAllowed is returned when the actor's role cannot trigger the
// requested transition. The backend enforces the same rule; the local gate
// only avoids a request that is certain to fail.
var ErrRoleNotAllowed = stderrors.New("this action is not permitted for your role")

// rule describes one row of the transition table.
type rule struct {
	from constants.Status
	role constants.Role
	to   constants.Status
}

var transitions = map[Event]rule{
	EventSendForApproval: {from: constants.StatusDraft, role: constants.RoleScheduler, to: constants.StatusPending},
	EventApprove:         {from: constants.StatusPending, role: constants.RoleApprover, to: constants.StatusApproved},
	EventReject:          {from: constants.StatusPending, role: constants.RoleApprover, to: constants.StatusDraft},
}

// CanTransition reports whether an actor with the given role may trigger
// event on a timetable in the given status.
func CanTransition(role constants.Role, from constants.Status, event Event) bool {
	r, ok := transitions[event]
	return ok && r.from == from && r.role == role
}

// Target returns the status a successful event leads to.
func Target(event Event) (constants.Status, bool) {
	r, ok := transitions[event]
	return r.to, ok
}

// Backend is the slice of the API the engine needs.
type Backend interface {
	SendForApproval(ctx context.Context, id int) (models.Timetable, error)
	Approve(ctx context.Context, id int, approved bool, comment string) (models.Timetable, error)
	ListTimetables(ctx context.Context, status constants.Status) ([]models.Timetable, error)
}

// ActorSource supplies the current actor's role.
type ActorSource interface {
	Role() constants.Role
}

// Engine drives approval transitions on behalf of the current actor.
type Engine struct {
	backend Backend
	actors  ActorSource
}

// New creates a workflow engine bound to the backend and the session.
func New(backend Backend, actors ActorSource) *Engine {
	return &Engine{backend: backend, actors: actors}
}

// Outcome is the result of a transition attempt. Queue is the reloaded
// source queue (drafts for send, pending for approve/reject) and is
// populated even when the transition itself failed, so a stale selection
// can be dropped. Updated is nil when the backend rejected the transition.
type Outcome struct {
	Updated *models.Timetable
	Queue   []models.Timetable
}

// StillListed reports whether id is present in the queue, used to decide
// whether a selection survived a concurrent transition by another actor.
func (o Outcome) StillListed(id int) bool {
	for _, tt := range o.Queue {
		if tt.ID == id {
			return true
		}
	}
	return false
}

// SendForApproval moves a draft into the pending queue.
func (e *Engine) SendForApproval(ctx context.Context, id int) (Outcome, error) {
	return e.attempt(ctx, EventSendForApproval, constants.StatusDraft, func() (models.Timetable, error) {
		return e.backend.SendForApproval(ctx, id)
	})
}

// Approve marks a pending timetable approved. The comment may be empty.
func (e *Engine) Approve(ctx context.Context, id int, comment string) (Outcome, error) {
	return e.attempt(ctx, EventApprove, constants.StatusPending, func() (models.Timetable, error) {
		return e.backend.Approve(ctx, id, true, comment)
	})
}

// Reject returns a pending timetable to draft. The comment may be empty.
func (e *Engine) Reject(ctx context.Context, id int, comment string) (Outcome, error) {
	return e.attempt(ctx, EventReject, constants.StatusPending, func() (models.Timetable, error) {
		return e.backend.Approve(ctx, id, false, comment)
	})
}

// attempt applies the local role gate, runs the transition call, and
// reloads the queue afterwards regardless of the call's outcome. The
// transition is never applied optimistically: only the backend's response
// and the reloaded queue reach the caller.
func (e *Engine) attempt(ctx context.Context, event Event, queueStatus constants.Status, call func() (models.Timetable, error)) (Outcome, error) {
	role := e.actors.Role()
	rule, ok := transitions[event]
	if !ok || rule.role != role {
		return Outcome{}, fmt.Errorf("%w: %s requires the %s role, you are %s", ErrRoleNotAllowed, event, rule.role, role)
	}

	updated, callErr := call()

	queue, listErr := e.backend.ListTimetables(ctx, queueStatus)
	if listErr != nil {
		logger.Warn("Failed to reload queue after transition", "event", event, "error", listErr)
	}

	out := Outcome{Queue: queue}
	if callErr != nil {
		return out, callErr
	}
	out.Updated = &updated
	logger.Info("Transition applied", "event", event, "timetable", updated.ID, "status", updated.Status)
	return out, nil
}

// PendingQueue fetches the current pending set.
func (e *Engine) PendingQueue(ctx context.Context) ([]models.Timetable, error) {
	return e.backend.ListTimetables(ctx, constants.StatusPending)
}
