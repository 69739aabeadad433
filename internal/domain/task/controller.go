package task

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rpggio/taskpane/internal/domain/project"
	"golang.org/x/sync/errgroup"
)

// Controller owns the task list and progress of one project. Any task
// mutation is followed by a full reload of both, since progress is derived
// on the server and never computed here.
type Controller struct {
	gateway Gateway
	edit    EditSession
	logger  *slog.Logger

	mu       sync.Mutex
	project  *project.Project
	tasks    []Task
	progress *Progress
	gen      uint64
}

// NewController creates a project detail controller.
func NewController(gateway Gateway, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{gateway: gateway, logger: logger}
}

// BindEditSession registers the task edit session cleared on delete.
func (c *Controller) BindEditSession(edit EditSession) {
	c.edit = edit
}

// ProjectID returns the id of the project the state belongs to.
func (c *Controller) ProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.project == nil {
		return ""
	}
	return c.project.ID
}

// Tasks returns the loaded tasks in server order.
func (c *Controller) Tasks() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tasks)
}

// Progress returns the loaded progress snapshot, if any.
func (c *Controller) Progress() (Progress, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.progress == nil {
		return Progress{}, false
	}
	return *c.progress, true
}

// Find returns the loaded task with the given id.
func (c *Controller) Find(id string) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// LoadFor fetches tasks and progress for proj concurrently. Each result is
// applied as soon as it arrives and independently of the other, so one
// failing fetch never blocks the other. Switching to a different project
// drops the previous project's state first. Results of a superseded load
// are discarded.
func (c *Controller) LoadFor(ctx context.Context, proj project.Project) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.project == nil || c.project.ID != proj.ID {
		c.tasks = nil
		c.progress = nil
	}
	current := proj
	c.project = &current
	c.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		tasks, err := c.gateway.ListTasks(ctx, proj.ID)
		if err != nil {
			c.logger.Warn("task list load failed", "project_id", proj.ID, "error", err)
			return fmt.Errorf("listing tasks: %w", err)
		}
		c.apply(gen, func() { c.tasks = tasks })
		return nil
	})
	g.Go(func() error {
		progress, err := c.gateway.GetProgress(ctx, proj.ID)
		if err != nil {
			c.logger.Warn("progress load failed", "project_id", proj.ID, "error", err)
			return fmt.Errorf("loading progress: %w", err)
		}
		c.apply(gen, func() { c.progress = progress })
		return nil
	})
	return g.Wait()
}

func (c *Controller) apply(gen uint64, set func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("dropping stale detail result", "generation", gen, "current", c.gen)
		return
	}
	set()
}

// Reset drops all detail state. Loads still in flight are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.project = nil
	c.tasks = nil
	c.progress = nil
}

// AddTask creates an incomplete task in the current project and reloads.
func (c *Controller) AddTask(ctx context.Context, fields Fields) (*Task, error) {
	projectID := c.ProjectID()
	if projectID == "" {
		return nil, ErrNoProject
	}
	created, err := c.gateway.CreateTask(ctx, projectID, fields)
	if err != nil {
		c.logger.Warn("task create failed", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return created, c.resync(ctx)
}

// ToggleCompleted flips t's completed flag on the server and reloads.
func (c *Controller) ToggleCompleted(ctx context.Context, t Task) error {
	completed := !t.Completed
	_, err := c.UpdateTask(ctx, t.ID, Patch{Completed: &completed})
	return err
}

// UpdateTask applies a partial update and reloads.
func (c *Controller) UpdateTask(ctx context.Context, id string, patch Patch) (*Task, error) {
	updated, err := c.gateway.UpdateTask(ctx, id, patch)
	if err != nil {
		c.logger.Warn("task update failed", "task_id", id, "error", err)
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	return updated, c.resync(ctx)
}

// RemoveTask deletes t, clears its edit session if one is open and
// reloads.
func (c *Controller) RemoveTask(ctx context.Context, t Task) error {
	if err := c.gateway.DeleteTask(ctx, t.ID); err != nil {
		c.logger.Warn("task delete failed", "task_id", t.ID, "error", err)
		return fmt.Errorf("deleting task %s: %w", t.ID, err)
	}
	if c.edit != nil {
		c.edit.CancelIf(t.ID)
	}
	return c.resync(ctx)
}

func (c *Controller) resync(ctx context.Context) error {
	c.mu.Lock()
	if c.project == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrResyncFailed, ErrNoProject)
	}
	proj := *c.project
	c.mu.Unlock()

	if err := c.LoadFor(ctx, proj); err != nil {
		return fmt.Errorf("%w: %w", ErrResyncFailed, err)
	}
	return nil
}
