// Package workspace wires the controllers and edit sessions of one signed
// in user and turns their state into render snapshots.
package workspace

import (
	"context"
	"log/slog"

	"github.com/rpggio/taskpane/internal/domain/edit"
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/view"
)

// Gateway is the API surface the workspace needs.
type Gateway interface {
	project.Gateway
	task.Gateway
}

// Workspace owns the project list, the detail of the selected project and
// both edit sessions.
type Workspace struct {
	Projects    *project.Controller
	Detail      *task.Controller
	ProjectEdit *edit.ProjectSession
	TaskEdit    *edit.TaskSession
}

// New wires a workspace over gateway.
func New(gateway Gateway, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	detail := task.NewController(gateway, logger.With("component", "detail"))
	projects := project.NewController(gateway, detail, logger.With("component", "projects"))
	projectEdit := edit.NewProjectSession(projects, logger.With("component", "project_edit"))
	taskEdit := edit.NewTaskSession(detail, logger.With("component", "task_edit"))

	projects.BindEditSessions(projectEdit, taskEdit)
	detail.BindEditSession(taskEdit)

	return &Workspace{
		Projects:    projects,
		Detail:      detail,
		ProjectEdit: projectEdit,
		TaskEdit:    taskEdit,
	}
}

// Start loads the project list.
func (w *Workspace) Start(ctx context.Context) error {
	return w.Projects.Refresh(ctx)
}

// Reset drops every piece of state, e.g. after logout.
func (w *Workspace) Reset() {
	w.Projects.Reset()
}

// CommitProjectEdit saves the open project draft.
func (w *Workspace) CommitProjectEdit(ctx context.Context) error {
	id, _, ok := w.ProjectEdit.Current()
	if !ok {
		return edit.ErrNotEditing
	}
	proj, err := w.Projects.Find(id)
	if err != nil {
		if sel, ok := w.Projects.Selected(); ok && sel.ID == id {
			proj = sel
		} else {
			return err
		}
	}
	return w.ProjectEdit.Commit(ctx, proj)
}

// CommitTaskEdit saves the open task draft.
func (w *Workspace) CommitTaskEdit(ctx context.Context) error {
	id, _, ok := w.TaskEdit.Current()
	if !ok {
		return edit.ErrNotEditing
	}
	t, found := w.Detail.Find(id)
	if !found {
		return task.ErrTaskNotFound
	}
	return w.TaskEdit.Commit(ctx, t)
}

// Snapshot captures the controller state for rendering. Detail state that
// belongs to a project other than the selection is left out.
func (w *Workspace) Snapshot() view.Data {
	var data view.Data
	data.Projects = w.Projects.Projects()

	if sel, ok := w.Projects.Selected(); ok {
		data.Selected = &sel
		if w.Detail.ProjectID() == sel.ID {
			data.Tasks = w.Detail.Tasks()
			if p, ok := w.Detail.Progress(); ok {
				data.Progress = &p
			}
		}
	}

	if id, draft, ok := w.ProjectEdit.Current(); ok {
		data.ProjectEdit = &view.ProjectDraft{ID: id, Fields: draft}
	}
	if id, draft, ok := w.TaskEdit.Current(); ok {
		data.TaskEdit = &view.TaskDraft{ID: id, Fields: draft}
	}
	return data
}
