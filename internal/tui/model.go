package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mlsaran/smarttimetable/internal/api"
	"github.com/mlsaran/smarttimetable/internal/artifact"
	"github.com/mlsaran/smarttimetable/internal/cache"
	"github.com/mlsaran/smarttimetable/internal/config"
	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/generator"
	"github.com/mlsaran/smarttimetable/internal/models"
	"github.com/mlsaran/smarttimetable/internal/session"
	"github.com/mlsaran/smarttimetable/internal/tui/components/schedulegrid"
	"github.com/mlsaran/smarttimetable/internal/workflow"
)

// Services are the wired application components the TUI composes.
type Services struct {
	Session   *session.Store
	Client    *api.Client
	Workflow  *workflow.Engine
	Generator *generator.Coordinator
	Cache     *cache.Store
	Config    config.Config
}

// Notification is the banner payload carried by workflow redirects. It is
// shown once and dismissed after five seconds or on any keypress.
type Notification struct {
	Message string
	Level   constants.NotifyLevel
}

// LoginFormModel holds the huh form values for the two login steps.
type LoginFormModel struct {
	Email string
	Code  string
}

// CommentFormModel holds the approval decision form values.
type CommentFormModel struct {
	Comment string
}

type Model struct {
	services Services
	state    constants.SessionState
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model

	width  int
	height int

	// busy guards against duplicate submissions while a request is in
	// flight; the backend offers no idempotency.
	busy     bool
	quitting bool

	notification *Notification
	notifySeq    int

	form      *huh.Form
	loginForm *LoginFormModel

	// Dashboard state
	timetables []models.Timetable
	statusTab  int // 0=draft 1=pending 2=approved
	cursor     int

	// Generator state
	infeasible *models.Infeasibility
	variantTab int

	// Approval state
	pending       []models.Timetable
	pendingCursor int
	selected      *models.Timetable
	commentForm   *CommentFormModel
	approveAction bool

	grid schedulegrid.Model
}

var statusTabs = []constants.Status{
	constants.StatusDraft,
	constants.StatusPending,
	constants.StatusApproved,
}

// New builds the TUI model. The session must already be restored; the
// initial state routes by the actor's role, or to login when anonymous.
func New(services Services) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		services: services,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		grid:     schedulegrid.New(80, 20),
	}

	if actor := services.Session.Actor(); actor != nil {
		m.state = stateFor(session.LandingView(actor.Role))
	} else {
		m.state = constants.StateLogin
		m.prepareEmailForm()
	}
	return m
}

// stateFor maps a navigation target to the TUI state that renders it.
func stateFor(view session.View) constants.SessionState {
	switch view {
	case session.ViewGenerator:
		return constants.StateGenerator
	case session.ViewApproval:
		return constants.StateApproval
	case session.ViewLogin:
		return constants.StateLogin
	default:
		return constants.StateViewer
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	switch m.state {
	case constants.StateApproval:
		cmds = append(cmds, m.loadPendingCmd())
	case constants.StateViewer, constants.StateDashboard:
		cmds = append(cmds, m.loadTimetablesCmd(statusTabs[m.statusTab]))
	}
	return tea.Batch(cmds...)
}

// --- messages -----------------------------------------------------------

type notifyMsg struct {
	note Notification
}

type dismissNotifyMsg struct {
	seq int
}

type codeRequestedMsg struct {
	email string
	err   error
}

type verifiedMsg struct {
	actor models.User
	view  session.View
	err   error
}

type timetablesLoadedMsg struct {
	list []models.Timetable
	err  error
}

type timetableLoadedMsg struct {
	tt  models.Timetable
	err error
}

type generateDoneMsg struct {
	infeasible *models.Infeasibility
	err        error
}

type transitionDoneMsg struct {
	event   workflow.Event
	outcome workflow.Outcome
	err     error
}

type artifactSavedMsg struct {
	path string
	err  error
}

// --- commands -----------------------------------------------------------

func (m Model) requestCodeCmd(email string) tea.Cmd {
	return func() tea.Msg {
		err := m.services.Session.RequestCode(context.Background(), email)
		return codeRequestedMsg{email: email, err: err}
	}
}

func (m Model) verifyCodeCmd(email, code string) tea.Cmd {
	return func() tea.Msg {
		actor, view, err := m.services.Session.VerifyCode(context.Background(), email, code)
		return verifiedMsg{actor: actor, view: view, err: err}
	}
}

func (m Model) loadTimetablesCmd(status constants.Status) tea.Cmd {
	return func() tea.Msg {
		list, err := m.services.Client.ListTimetables(context.Background(), status)
		return timetablesLoadedMsg{list: list, err: err}
	}
}

func (m Model) loadTimetableCmd(id int) tea.Cmd {
	return func() tea.Msg {
		tt, err := m.services.Client.GetTimetable(context.Background(), id)
		if err == nil {
			// Write-through so the read-only view survives offline.
			_ = m.services.Cache.Put(tt)
		}
		return timetableLoadedMsg{tt: tt, err: err}
	}
}

func (m Model) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		list, err := m.services.Workflow.PendingQueue(context.Background())
		return timetablesLoadedMsg{list: list, err: err}
	}
}

func (m Model) generateCmd(count int) tea.Cmd {
	return func() tea.Msg {
		infeasible, err := m.services.Generator.Generate(context.Background(), count)
		return generateDoneMsg{infeasible: infeasible, err: err}
	}
}

func (m Model) sendForApprovalCmd(id int) tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.services.Workflow.SendForApproval(context.Background(), id)
		return transitionDoneMsg{event: workflow.EventSendForApproval, outcome: outcome, err: err}
	}
}

func (m Model) decideCmd(id int, approved bool, comment string) tea.Cmd {
	return func() tea.Msg {
		var (
			outcome workflow.Outcome
			err     error
		)
		event := workflow.EventApprove
		if approved {
			outcome, err = m.services.Workflow.Approve(context.Background(), id, comment)
		} else {
			event = workflow.EventReject
			outcome, err = m.services.Workflow.Reject(context.Background(), id, comment)
		}
		return transitionDoneMsg{event: event, outcome: outcome, err: err}
	}
}

func (m Model) exportCmd(id int) tea.Cmd {
	return func() tea.Msg {
		art, err := m.services.Client.ExportPDF(context.Background(), id)
		if err != nil {
			return artifactSavedMsg{err: err}
		}
		path, err := artifact.Save(art, m.services.Config.DownloadDir)
		return artifactSavedMsg{path: path, err: err}
	}
}

// notifyCmd shows a banner and schedules its auto-dismissal.
func notifyCmd(level constants.NotifyLevel, message string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{note: Notification{Message: message, Level: level}}
	}
}

func dismissAfter(seq int) tea.Cmd {
	return tea.Tick(constants.NotificationDurationMs*time.Millisecond, func(time.Time) tea.Msg {
		return dismissNotifyMsg{seq: seq}
	})
}
