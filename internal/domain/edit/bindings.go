package edit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
)

// ProjectSession edits one project at a time.
type ProjectSession = Session[project.Project, project.Fields]

// TaskSession edits one task's title and description at a time.
type TaskSession = Session[task.Task, task.Fields]

// ProjectUpdater replaces a project's fields.
type ProjectUpdater interface {
	Update(ctx context.Context, id string, fields project.Fields) (*project.Project, error)
}

// TaskUpdater applies a partial task update.
type TaskUpdater interface {
	UpdateTask(ctx context.Context, id string, patch task.Patch) (*task.Task, error)
}

// NewProjectSession creates a project edit session that commits the full
// draft through updater.
func NewProjectSession(updater ProjectUpdater, logger *slog.Logger) *ProjectSession {
	return NewSession(Binding[project.Project, project.Fields]{
		Kind: "project",
		ID:   func(p project.Project) string { return p.ID },
		Seed: project.Project.Fields,
		Commit: func(ctx context.Context, p project.Project, draft project.Fields) error {
			_, err := updater.Update(ctx, p.ID, draft)
			return err
		},
		Accepted: func(err error) bool { return errors.Is(err, project.ErrRefreshFailed) },
	}, logger)
}

// NewTaskSession creates a task edit session. A commit sends title,
// description and the task's last known completed flag; the draft has no
// completion toggle.
func NewTaskSession(updater TaskUpdater, logger *slog.Logger) *TaskSession {
	return NewSession(Binding[task.Task, task.Fields]{
		Kind: "task",
		ID:   func(t task.Task) string { return t.ID },
		Seed: func(t task.Task) task.Fields {
			return task.Fields{Title: t.Title, Description: t.Description}
		},
		Commit: func(ctx context.Context, t task.Task, draft task.Fields) error {
			completed := t.Completed
			_, err := updater.UpdateTask(ctx, t.ID, task.Patch{
				Title:       &draft.Title,
				Description: &draft.Description,
				Completed:   &completed,
			})
			return err
		},
		Accepted: func(err error) bool { return errors.Is(err, task.ErrResyncFailed) },
	}, logger)
}
