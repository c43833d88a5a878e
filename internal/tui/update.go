package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mlsaran/smarttimetable/internal/constants"
	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/session"
	"github.com/mlsaran/smarttimetable/internal/workflow"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notifyMsg:
		m.notification = &msg.note
		m.notifySeq++
		return m, dismissAfter(m.notifySeq)

	case dismissNotifyMsg:
		// A newer banner superseded this timer.
		if msg.seq == m.notifySeq {
			m.notification = nil
		}
		return m, nil

	case codeRequestedMsg:
		m.busy = false
		if msg.err != nil {
			m.prepareEmailForm()
			return m, tea.Batch(m.form.Init(), notifyCmd(constants.NotifyError, msg.err.Error()))
		}
		m.state = constants.StateOTP
		m.prepareOTPForm()
		return m, tea.Batch(m.form.Init(), notifyCmd(constants.NotifyInfo, "verification code sent to "+msg.email))

	case verifiedMsg:
		m.busy = false
		if msg.err != nil {
			m.prepareOTPForm()
			level := constants.NotifyError
			if errors.Is(msg.err, session.ErrInvalidCode) {
				level = constants.NotifyWarning
			}
			return m, tea.Batch(m.form.Init(), notifyCmd(level, msg.err.Error()))
		}
		m.state = stateFor(msg.view)
		m.form = nil
		logger.Info("signed in", "role", msg.actor.Role, "view", msg.view)
		cmds = append(cmds, notifyCmd(constants.NotifySuccess, "signed in as "+msg.actor.Email))
		switch m.state {
		case constants.StateApproval:
			cmds = append(cmds, m.loadPendingCmd())
		case constants.StateViewer:
			cmds = append(cmds, m.loadTimetablesCmd(constants.StatusApproved))
		}
		return m, tea.Batch(cmds...)

	case timetablesLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m, notifyCmd(constants.NotifyError, msg.err.Error())
		}
		if m.state == constants.StateApproval {
			m.pending = msg.list
			if m.pendingCursor >= len(m.pending) {
				m.pendingCursor = 0
			}
		} else {
			m.timetables = msg.list
			if m.cursor >= len(m.timetables) {
				m.cursor = 0
			}
		}
		return m, nil

	case timetableLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m, notifyCmd(constants.NotifyError, msg.err.Error())
		}
		tt := msg.tt
		m.selected = &tt
		m.grid.SetPeriods(tt.Periods)
		return m, nil

	case generateDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, notifyCmd(constants.NotifyError, msg.err.Error())
		}
		m.infeasible = msg.infeasible
		if msg.infeasible != nil {
			return m, notifyCmd(constants.NotifyWarning, msg.infeasible.Error)
		}
		m.variantTab = m.services.Generator.ActiveIndex()
		if active := m.services.Generator.Active(); active != nil {
			m.grid.SetPeriods(active.Periods)
		}
		n := len(m.services.Generator.Variants())
		return m, notifyCmd(constants.NotifySuccess, fmt.Sprintf("generated %d variant(s)", n))

	case transitionDoneMsg:
		m.busy = false
		if msg.err != nil {
			level := constants.NotifyError
			if errors.Is(msg.err, workflow.ErrRoleNotAllowed) {
				level = constants.NotifyWarning
			}
			if m.state == constants.StateApproval {
				m.pending = msg.outcome.Queue
			}
			return m, notifyCmd(level, msg.err.Error())
		}
		switch m.state {
		case constants.StateGenerator:
			m.variantTab = 0
			m.grid.SetPeriods(nil)
			return m, notifyCmd(constants.NotifySuccess, "timetable sent for approval")
		case constants.StateApproval:
			m.pending = msg.outcome.Queue
			if m.pendingCursor >= len(m.pending) {
				m.pendingCursor = 0
			}
			m.selected = nil
			verb := "approved"
			if msg.event == workflow.EventReject {
				verb = "rejected, reverted to draft"
			}
			return m, notifyCmd(constants.NotifySuccess, fmt.Sprintf("timetable #%d %s", msg.outcome.Updated.ID, verb))
		}
		return m, nil

	case artifactSavedMsg:
		m.busy = false
		if msg.err != nil {
			return m, notifyCmd(constants.NotifyError, msg.err.Error())
		}
		return m, notifyCmd(constants.NotifySuccess, "saved "+msg.path)

	case tea.KeyMsg:
		// Any keypress clears the current banner unless it is the one
		// that triggers a new action.
		if m.notification != nil && !key.Matches(msg, m.keys.Quit) {
			m.notification = nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			// A request is in flight; drop everything but quit.
			return m, nil
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// updateForm feeds a message to the active huh form and fires the submit
// action once the form completes.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" && m.state == constants.StateApprovalComment {
		m.form = nil
		m.state = constants.StateApproval
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// A completed form is spent: drop it before firing the submit action
	// so later keypresses hit the busy guard instead of resubmitting.
	switch m.state {
	case constants.StateLogin:
		m.form = nil
		m.busy = true
		return m, tea.Batch(cmd, m.requestCodeCmd(m.loginForm.Email))
	case constants.StateOTP:
		m.form = nil
		m.busy = true
		return m, tea.Batch(cmd, m.verifyCodeCmd(m.loginForm.Email, m.loginForm.Code))
	case constants.StateApprovalComment:
		m.form = nil
		m.state = constants.StateApproval
		if m.selected == nil {
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(cmd, m.decideCmd(m.selected.ID, m.approveAction, m.commentForm.Comment))
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		view := m.services.Session.Logout()
		m.state = stateFor(view)
		m.timetables = nil
		m.pending = nil
		m.selected = nil
		m.infeasible = nil
		m.grid.SetPeriods(nil)
		m.prepareEmailForm()
		return m, tea.Batch(m.form.Init(), notifyCmd(constants.NotifyInfo, "signed out"))
	}

	switch m.state {
	case constants.StateGenerator:
		return m.handleGeneratorKey(msg)
	case constants.StateApproval:
		return m.handleApprovalKey(msg)
	case constants.StateViewer, constants.StateDashboard:
		return m.handleViewerKey(msg)
	}
	return m, nil
}

func (m Model) handleGeneratorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	variants := m.services.Generator.Variants()
	switch {
	case key.Matches(msg, m.keys.Generate):
		m.busy = true
		m.infeasible = nil
		count := m.services.Config.DefaultVariants
		return m, m.generateCmd(count)

	case key.Matches(msg, m.keys.Tab):
		if len(variants) > 0 {
			m.variantTab = (m.variantTab + 1) % len(variants)
			m.services.Generator.SetActive(m.variantTab)
			m.grid.SetPeriods(variants[m.variantTab].Periods)
		}
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		if len(variants) > 0 {
			m.variantTab = (m.variantTab - 1 + len(variants)) % len(variants)
			m.services.Generator.SetActive(m.variantTab)
			m.grid.SetPeriods(variants[m.variantTab].Periods)
		}
		return m, nil

	case key.Matches(msg, m.keys.GroupBy):
		m.grid.CycleDimension()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.grid.CycleKey(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.grid.CycleKey(1)
		return m, nil

	case key.Matches(msg, m.keys.Send):
		if active := m.services.Generator.Active(); active != nil {
			m.busy = true
			return m, m.sendForApprovalCmd(active.ID)
		}
		return m, notifyCmd(constants.NotifyWarning, "no variant selected")

	case key.Matches(msg, m.keys.Export):
		if active := m.services.Generator.Active(); active != nil {
			m.busy = true
			return m, m.exportCmd(active.ID)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleApprovalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pendingCursor > 0 {
			m.pendingCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.pendingCursor < len(m.pending)-1 {
			m.pendingCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.pendingCursor < len(m.pending) {
			m.busy = true
			return m, m.loadTimetableCmd(m.pending[m.pendingCursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.GroupBy):
		m.grid.CycleDimension()
		return m, nil

	case key.Matches(msg, m.keys.Approve):
		return m.beginDecision(true)

	case key.Matches(msg, m.keys.Reject):
		return m.beginDecision(false)

	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		return m, m.loadPendingCmd()

	case key.Matches(msg, m.keys.Back):
		m.selected = nil
		m.grid.SetPeriods(nil)
		return m, nil
	}
	return m, nil
}

func (m Model) beginDecision(approve bool) (tea.Model, tea.Cmd) {
	if m.selected == nil {
		if m.pendingCursor >= len(m.pending) {
			return m, notifyCmd(constants.NotifyWarning, "nothing selected")
		}
		tt := m.pending[m.pendingCursor]
		m.selected = &tt
	}
	m.approveAction = approve
	m.state = constants.StateApprovalComment
	m.prepareCommentForm(approve)
	return m, m.form.Init()
}

func (m Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.statusTab = (m.statusTab + 1) % len(statusTabs)
		m.cursor = 0
		m.busy = true
		return m, m.loadTimetablesCmd(statusTabs[m.statusTab])

	case key.Matches(msg, m.keys.ShiftTab):
		m.statusTab = (m.statusTab - 1 + len(statusTabs)) % len(statusTabs)
		m.cursor = 0
		m.busy = true
		return m, m.loadTimetablesCmd(statusTabs[m.statusTab])

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.timetables)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(m.timetables) {
			m.busy = true
			return m, m.loadTimetableCmd(m.timetables[m.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.GroupBy):
		m.grid.CycleDimension()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.selected != nil {
			m.busy = true
			return m, m.exportCmd(m.selected.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		return m, m.loadTimetablesCmd(statusTabs[m.statusTab])

	case key.Matches(msg, m.keys.Back):
		m.selected = nil
		m.grid.SetPeriods(nil)
		return m, nil
	}
	return m, nil
}

// --- forms --------------------------------------------------------------

func (m *Model) prepareEmailForm() {
	m.loginForm = &LoginFormModel{}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("email").
			Title("Email").
			Placeholder("you@example.edu").
			Value(&m.loginForm.Email).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("email is required")
				}
				return nil
			}),
	)).WithShowHelp(false)
}

func (m *Model) prepareOTPForm() {
	m.loginForm.Code = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("code").
			Title("One-time code").
			Placeholder("123456").
			Value(&m.loginForm.Code).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("code is required")
				}
				return nil
			}),
	)).WithShowHelp(false)
}

func (m *Model) prepareCommentForm(approve bool) {
	m.commentForm = &CommentFormModel{}
	title := "Approval comment (optional)"
	if !approve {
		title = "Rejection comment"
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Key("comment").
			Title(title).
			Value(&m.commentForm.Comment),
	)).WithShowHelp(false)
}
