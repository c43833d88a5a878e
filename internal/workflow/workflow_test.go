package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/models"
)

type fakeBackend struct {
	sendCalls    int
	approveCalls int

	transitionResult models.Timetable
	transitionErr    error
	queue            []models.Timetable
	queueErr         error

	lastApproved bool
	lastComment  string
}

func (f *fakeBackend) SendForApproval(ctx context.Context, id int) (models.Timetable, error) {
	f.sendCalls++
	return f.transitionResult, f.transitionErr
}

func (f *fakeBackend) Approve(ctx context.Context, id int, approved bool, comment string) (models.Timetable, error) {
	f.approveCalls++
	f.lastApproved = approved
	f.lastComment = comment
	return f.transitionResult, f.transitionErr
}

func (f *fakeBackend) ListTimetables(ctx context.Context, status constants.Status) ([]models.Timetable, error) {
	return f.queue, f.queueErr
}

type fakeActor struct {
	role constants.Role
}

func (f fakeActor) Role() constants.Role { return f.role }

func TestCanTransition(t *testing.T) {
	tests := []struct {
		role  constants.Role
		from  constants.Status
		event Event
		want  bool
	}{
		{constants.RoleScheduler, constants.StatusDraft, EventSendForApproval, true},
		{constants.RoleScheduler, constants.StatusPending, EventSendForApproval, false},
		{constants.RoleScheduler, constants.StatusPending, EventApprove, false},
		{constants.RoleApprover, constants.StatusPending, EventApprove, true},
		{constants.RoleApprover, constants.StatusPending, EventReject, true},
		{constants.RoleApprover, constants.StatusDraft, EventApprove, false},
		{constants.RoleApprover, constants.StatusDraft, EventSendForApproval, false},
		{constants.RoleReadonly, constants.StatusPending, EventApprove, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.role, tc.from, tc.event); got != tc.want {
			t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", tc.role, tc.from, tc.event, got, tc.want)
		}
	}
}

func TestTargetStatuses(t *testing.T) {
	if to, ok := Target(EventApprove); !ok || to != constants.StatusApproved {
		t.Errorf("approve should target approved, got %s", to)
	}
	if to, ok := Target(EventReject); !ok || to != constants.StatusDraft {
		t.Errorf("reject should revert to draft, got %s", to)
	}
	if to, ok := Target(EventSendForApproval); !ok || to != constants.StatusPending {
		t.Errorf("send should target pending, got %s", to)
	}
	if _, ok := Target(Event("bogus")); ok {
		t.Error("unknown event should not resolve a target")
	}
}

func TestRoleGateBlocksDisallowedTransition(t *testing.T) {
	backend := &fakeBackend{}
	engine := New(backend, fakeActor{role: constants.RoleScheduler})

	_, err := engine.Approve(context.Background(), 7, "looks good")
	if !errors.Is(err, ErrRoleNotAllowed) {
		t.Fatalf("expected ErrRoleNotAllowed, got %v", err)
	}
	if backend.approveCalls != 0 {
		t.Errorf("blocked transition must not reach the backend, got %d calls", backend.approveCalls)
	}
}

func TestApproveWithComment(t *testing.T) {
	backend := &fakeBackend{
		transitionResult: models.Timetable{ID: 7, Status: constants.StatusApproved},
		queue:            []models.Timetable{{ID: 9, Status: constants.StatusPending}},
	}
	engine := New(backend, fakeActor{role: constants.RoleApprover})

	outcome, err := engine.Approve(context.Background(), 7, "ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !backend.lastApproved {
		t.Error("expected approved=true on the wire")
	}
	if backend.lastComment != "ok" {
		t.Errorf("expected comment %q carried through, got %q", "ok", backend.lastComment)
	}
	if outcome.Updated == nil || outcome.Updated.Status != constants.StatusApproved {
		t.Fatalf("expected updated approved timetable, got %+v", outcome.Updated)
	}
	if outcome.StillListed(7) {
		t.Error("approved timetable should have left the pending queue")
	}
	if !outcome.StillListed(9) {
		t.Error("remaining pending timetable should still be listed")
	}
}

func TestRejectSendsApprovedFalse(t *testing.T) {
	backend := &fakeBackend{
		transitionResult: models.Timetable{ID: 4, Status: constants.StatusDraft},
	}
	engine := New(backend, fakeActor{role: constants.RoleApprover})

	outcome, err := engine.Reject(context.Background(), 4, "clashes on Tuesday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.lastApproved {
		t.Error("reject must send approved=false")
	}
	if outcome.Updated.Status != constants.StatusDraft {
		t.Errorf("rejected timetable should revert to draft, got %s", outcome.Updated.Status)
	}
}

func TestFailedTransitionStillReloadsQueue(t *testing.T) {
	// Another approver got there first: the call fails but the reloaded
	// queue lets the caller notice the stale selection.
	backendErr := errors.New("timetable is not pending")
	backend := &fakeBackend{
		transitionErr: backendErr,
		queue:         []models.Timetable{{ID: 2, Status: constants.StatusPending}},
	}
	engine := New(backend, fakeActor{role: constants.RoleApprover})

	outcome, err := engine.Approve(context.Background(), 7, "")
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error to surface, got %v", err)
	}
	if outcome.Updated != nil {
		t.Error("failed transition must not report an updated timetable")
	}
	if outcome.StillListed(7) {
		t.Error("stale selection should no longer appear in the reloaded queue")
	}
	if !outcome.StillListed(2) {
		t.Error("queue reload should include the remaining pending entries")
	}
}

func TestSendForApproval(t *testing.T) {
	backend := &fakeBackend{
		transitionResult: models.Timetable{ID: 3, Status: constants.StatusPending},
	}
	engine := New(backend, fakeActor{role: constants.RoleScheduler})

	outcome, err := engine.SendForApproval(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.sendCalls != 1 {
		t.Errorf("expected exactly one send call, got %d", backend.sendCalls)
	}
	if outcome.Updated.Status != constants.StatusPending {
		t.Errorf("sent timetable should be pending, got %s", outcome.Updated.Status)
	}
}

func TestPendingQueue(t *testing.T) {
	backend := &fakeBackend{
		queue: []models.Timetable{{ID: 1, Status: constants.StatusPending}},
	}
	engine := New(backend, fakeActor{role: constants.RoleApprover})

	queue, err := engine.PendingQueue(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue) != 1 || queue[0].ID != 1 {
		t.Errorf("unexpected queue: %+v", queue)
	}
}
