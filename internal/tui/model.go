// Package tui is the terminal front end: a login screen and a two pane
// project/task view driven by the workspace controllers.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/taskpane/internal/api"
	"github.com/rpggio/taskpane/internal/auth"
	"github.com/rpggio/taskpane/internal/domain/edit"
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/view"
	"github.com/rpggio/taskpane/internal/workspace"
)

// Default login form values.
const (
	DefaultEmail    = "test@hahn.com"
	DefaultPassword = "password123"
)

type screen int

const (
	screenLogin screen = iota
	screenMain
)

// Deps are the collaborators of the program.
type Deps struct {
	Session   *auth.Session
	Authn     auth.Authenticator
	Workspace *workspace.Workspace
	// Timeout bounds every operation started from the UI.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Model is the bubbletea model.
type Model struct {
	deps Deps

	screen   screen
	email    textinput.Model
	password textinput.Model
	loginErr string

	data          view.Data
	pane          view.Pane
	projectCursor int
	taskCursor    int
	form          *form
	status        string
	statusIsError bool
	busy          bool
	width         int
}

type loginDoneMsg struct{ err error }

type logoutDoneMsg struct{ err error }

// opDoneMsg reports a finished controller operation.
type opDoneMsg struct {
	success   string
	err       error
	closeForm bool
}

// New creates the model. An already authenticated session starts on the
// main screen.
func New(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 10 * time.Second
	}
	m := Model{
		deps:     deps,
		email:    newInput("Email", DefaultEmail),
		password: newInput("Password", DefaultPassword),
	}
	m.password.EchoMode = textinput.EchoPassword
	m.email.Focus()
	if deps.Session.Authenticated() {
		m.screen = screenMain
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenMain {
		return m.op("", false, m.deps.Workspace.Start)
	}
	return nil
}

// op runs fn off the UI goroutine with a bounded context.
func (m Model) op(success string, closeForm bool, fn func(ctx context.Context) error) tea.Cmd {
	timeout := m.deps.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := fn(ctx)
		return opDoneMsg{success: success, err: err, closeForm: closeForm && err == nil}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case loginDoneMsg:
		return m.handleLoginDone(msg)
	case logoutDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.deps.Logger.Warn("logout storage error", "error", msg.err)
		}
		return m, nil
	case opDoneMsg:
		return m.handleOpDone(msg)
	case tea.KeyMsg:
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		if m.email.Focused() {
			m.email.Blur()
			m.password.Focus()
		} else {
			m.password.Blur()
			m.email.Focus()
		}
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.loginErr = ""
		email, password := m.email.Value(), m.password.Value()
		session, authn, timeout := m.deps.Session, m.deps.Authn, m.deps.Timeout
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return loginDoneMsg{err: session.Login(ctx, authn, email, password)}
		}
	}

	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.loginErr = api.LoginMessage(msg.err)
		return m, nil
	}
	m.loginErr = ""
	m.screen = screenMain
	m.status = ""
	m.busy = true
	return m, m.op("", false, m.deps.Workspace.Start)
}

func (m Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.data = m.deps.Workspace.Snapshot()
	m.clampCursors()

	if msg.err != nil && errors.Is(msg.err, api.ErrUnauthorized) {
		return m.logout(api.Message(msg.err))
	}
	if msg.closeForm {
		m.form = nil
	}
	switch {
	case msg.err != nil:
		m.status = api.Message(msg.err)
		m.statusIsError = true
	default:
		m.status = msg.success
		m.statusIsError = false
	}
	return m, nil
}

func (m Model) logout(reason string) (tea.Model, tea.Cmd) {
	m.deps.Workspace.Reset()
	m.data = view.Data{}
	m.form = nil
	m.screen = screenLogin
	m.loginErr = reason
	m.status = ""
	m.projectCursor, m.taskCursor = 0, 0
	m.pane = view.PaneProjects
	session, timeout := m.deps.Session, m.deps.Timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return logoutDoneMsg{err: session.Logout(ctx)}
	}
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, keys.Logout) {
		return m.logout("")
	}
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.SwitchPane):
		if m.pane == view.PaneProjects && m.data.Selected != nil {
			m.pane = view.PaneTasks
		} else {
			m.pane = view.PaneProjects
		}
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.Refresh):
		return m.start("", false, m.deps.Workspace.Projects.Refresh)
	case m.pane == view.PaneProjects:
		return m.updateProjectsPane(msg)
	default:
		return m.updateTasksPane(msg)
	}
	return m, nil
}

func (m Model) updateProjectsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.deps.Workspace
	switch {
	case key.Matches(msg, keys.New):
		m.form = newProjectForm(formNewProject, project.Fields{})
	case key.Matches(msg, keys.Open):
		if p, ok := m.cursorProject(); ok {
			return m.start("", false, func(ctx context.Context) error { return ws.Projects.Select(ctx, p) })
		}
	case key.Matches(msg, keys.Edit):
		if p, ok := m.cursorProject(); ok {
			ws.ProjectEdit.Begin(p)
			_, draft, _ := ws.ProjectEdit.Current()
			m.form = newProjectForm(formEditProject, draft)
			m.data = ws.Snapshot()
		}
	case key.Matches(msg, keys.Delete):
		if p, ok := m.cursorProject(); ok {
			return m.start("Deleted "+p.Name, false, func(ctx context.Context) error { return ws.Projects.Remove(ctx, p) })
		}
	}
	return m, nil
}

func (m Model) updateTasksPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ws := m.deps.Workspace
	switch {
	case key.Matches(msg, keys.New):
		m.form = newTaskForm(formNewTask, task.Fields{})
	case key.Matches(msg, keys.Toggle):
		if t, ok := m.cursorTask(); ok {
			return m.start("", false, func(ctx context.Context) error { return ws.Detail.ToggleCompleted(ctx, t) })
		}
	case key.Matches(msg, keys.Edit):
		if t, ok := m.cursorTask(); ok {
			ws.TaskEdit.Begin(t)
			_, draft, _ := ws.TaskEdit.Current()
			m.form = newTaskForm(formEditTask, draft)
			m.data = ws.Snapshot()
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := m.cursorTask(); ok {
			return m.start("Deleted "+t.Title, false, func(ctx context.Context) error { return ws.Detail.RemoveTask(ctx, t) })
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	f := m.form
	switch {
	case key.Matches(msg, formKeys.Cancel):
		m.cancelForm()
		return m, nil
	case key.Matches(msg, formKeys.Next):
		f.move(1)
		return m, nil
	case key.Matches(msg, formKeys.Prev):
		f.move(-1)
		return m, nil
	case key.Matches(msg, formKeys.Submit):
		if m.busy {
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	m.syncDraft()
	return m, cmd
}

// syncDraft mirrors edit form inputs into the open edit session.
func (m *Model) syncDraft() {
	ws := m.deps.Workspace
	switch m.form.kind {
	case formEditProject:
		fields := m.form.projectFields()
		ws.ProjectEdit.UpdateDraft(func(d *project.Fields) { *d = fields })
	case formEditTask:
		fields := m.form.taskFields()
		ws.TaskEdit.UpdateDraft(func(d *task.Fields) { *d = fields })
	}
}

func (m *Model) cancelForm() {
	switch m.form.kind {
	case formEditProject:
		m.deps.Workspace.ProjectEdit.Cancel()
	case formEditTask:
		m.deps.Workspace.TaskEdit.Cancel()
	}
	m.form = nil
	m.data = m.deps.Workspace.Snapshot()
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	ws := m.deps.Workspace
	f := m.form
	switch f.kind {
	case formNewProject:
		fields := f.projectFields()
		return m.start("Created "+view.FieldsSummary(fields), true, func(ctx context.Context) error {
			created, err := ws.Projects.Create(ctx, fields)
			if created != nil && errors.Is(err, project.ErrRefreshFailed) {
				return nil
			}
			return err
		})
	case formNewTask:
		fields := f.taskFields()
		return m.start("Added "+fields.Title, true, func(ctx context.Context) error {
			created, err := ws.Detail.AddTask(ctx, fields)
			if created != nil && errors.Is(err, task.ErrResyncFailed) {
				return nil
			}
			return err
		})
	case formEditProject:
		return m.start("Saved", true, func(ctx context.Context) error {
			return acceptedCommit(ws.CommitProjectEdit(ctx), ws.ProjectEdit.State())
		})
	default:
		return m.start("Saved", true, func(ctx context.Context) error {
			return acceptedCommit(ws.CommitTaskEdit(ctx), ws.TaskEdit.State())
		})
	}
}

// acceptedCommit treats a commit the server accepted as success even when
// the reload after it failed.
func acceptedCommit(err error, state edit.State) error {
	if err != nil && state == edit.Idle && !errors.Is(err, edit.ErrNotEditing) {
		return nil
	}
	return err
}

func (m Model) start(success string, closeForm bool, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = ""
	return m, m.op(success, closeForm, fn)
}

func (m *Model) moveCursor(delta int) {
	if m.pane == view.PaneProjects {
		m.projectCursor += delta
	} else {
		m.taskCursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.projectCursor = clamp(m.projectCursor, len(m.data.Projects))
	m.taskCursor = clamp(m.taskCursor, len(m.data.Tasks))
	if m.data.Selected == nil {
		m.pane = view.PaneProjects
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m Model) cursorProject() (project.Project, bool) {
	if m.projectCursor >= len(m.data.Projects) {
		return project.Project{}, false
	}
	return m.data.Projects[m.projectCursor], true
}

func (m Model) cursorTask() (task.Task, bool) {
	if m.taskCursor >= len(m.data.Tasks) {
		return task.Task{}, false
	}
	return m.data.Tasks[m.taskCursor], true
}

func (m Model) View() string {
	if m.screen == screenLogin {
		focus := 0
		if m.password.Focused() {
			focus = 1
		}
		return view.RenderLogin(view.LoginState{
			Email:    m.email.Value(),
			Password: m.password.Value(),
			Focus:    focus,
			Error:    m.loginErr,
			Busy:     m.busy,
		})
	}

	s := view.State{
		Data:          m.data,
		Pane:          m.pane,
		ProjectCursor: m.projectCursor,
		TaskCursor:    m.taskCursor,
		Status:        m.status,
		StatusIsError: m.statusIsError,
		Busy:          m.busy,
		Width:         m.width,
	}
	if m.form != nil {
		s.Form = m.form.render()
	}
	return view.Render(s)
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(deps Deps) error {
	_, err := tea.NewProgram(New(deps), tea.WithAltScreen()).Run()
	return err
}
