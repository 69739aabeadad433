package project

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Controller owns the project list and the current selection. Every
// mutation is sent to the gateway first and followed by a full refresh;
// nothing is patched locally except the selected snapshot after an update.
type Controller struct {
	gateway Gateway
	detail  Detail
	logger  *slog.Logger

	projectEdit EditSession
	taskEdit    EditSession

	mu       sync.Mutex
	projects []Project
	selected *Project
	gen      uint64
	// selGen counts selection changes; a Select that finds it moved on
	// hands the detail back to whatever is selected now.
	selGen uint64
}

// NewController creates a project list controller.
func NewController(gateway Gateway, detail Detail, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{gateway: gateway, detail: detail, logger: logger}
}

// BindEditSessions registers the project and task edit sessions so that
// selection changes and deletes can clear them.
func (c *Controller) BindEditSessions(projectEdit, taskEdit EditSession) {
	c.projectEdit = projectEdit
	c.taskEdit = taskEdit
}

// Projects returns the projects in server order.
func (c *Controller) Projects() []Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.projects)
}

// Selected returns the selected project, if any.
func (c *Controller) Selected() (Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return Project{}, false
	}
	return *c.selected, true
}

// Find returns the listed project with the given id.
func (c *Controller) Find(id string) (Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrProjectNotFound
}

// Refresh replaces the project list with the server's. On failure the
// previous list stays in place. A refresh superseded by a later one is
// dropped when it completes.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	projects, err := c.gateway.ListProjects(ctx)
	if err != nil {
		c.logger.Warn("project refresh failed", "error", err)
		return fmt.Errorf("listing projects: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("dropping stale project list", "generation", gen, "current", c.gen)
		return nil
	}
	c.projects = projects
	return nil
}

// Create creates a project and refreshes the list. The server is the only
// validator. A non-nil project is returned whenever the create itself
// succeeded, even if the refresh after it did not.
func (c *Controller) Create(ctx context.Context, fields Fields) (*Project, error) {
	created, err := c.gateway.CreateProject(ctx, fields)
	if err != nil {
		c.logger.Warn("project create failed", "name", fields.Name, "error", err)
		return nil, fmt.Errorf("creating project: %w", err)
	}
	if err := c.Refresh(ctx); err != nil {
		return created, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return created, nil
}

// Select makes proj the selection, discards both edit sessions and loads
// the project's tasks and progress.
func (c *Controller) Select(ctx context.Context, proj Project) error {
	c.mu.Lock()
	selected := proj
	c.selected = &selected
	c.selGen++
	gen := c.selGen
	c.mu.Unlock()

	if c.projectEdit != nil {
		c.projectEdit.Cancel()
	}
	if c.taskEdit != nil {
		c.taskEdit.Cancel()
	}

	loadErr := c.detail.LoadFor(ctx, proj)

	c.mu.Lock()
	stale := gen != c.selGen
	var current *Project
	if c.selected != nil {
		cur := *c.selected
		current = &cur
	}
	c.mu.Unlock()

	if stale {
		c.logger.Debug("selection changed during load", "project_id", proj.ID)
		switch {
		case current == nil:
			c.detail.Reset()
		case current.ID != proj.ID:
			if err := c.detail.LoadFor(ctx, *current); err != nil {
				return fmt.Errorf("loading project %s: %w", current.ID, err)
			}
		}
		return nil
	}
	if loadErr != nil {
		return fmt.Errorf("loading project %s: %w", proj.ID, loadErr)
	}
	return nil
}

// Update replaces the project's fields. When the project is selected the
// snapshot is patched right away so the detail header matches the edit.
func (c *Controller) Update(ctx context.Context, id string, fields Fields) (*Project, error) {
	updated, err := c.gateway.UpdateProject(ctx, id, fields)
	if err != nil {
		c.logger.Warn("project update failed", "project_id", id, "error", err)
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}

	c.mu.Lock()
	if c.selected != nil && c.selected.ID == id {
		merged := c.selected.WithFields(fields)
		c.selected = &merged
	}
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		return updated, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return updated, nil
}

// Remove deletes proj. Removing the selected project clears the selection
// and all detail state before the list is refreshed; removing any other
// project leaves the detail alone.
func (c *Controller) Remove(ctx context.Context, proj Project) error {
	if err := c.gateway.DeleteProject(ctx, proj.ID); err != nil {
		c.logger.Warn("project delete failed", "project_id", proj.ID, "error", err)
		return fmt.Errorf("deleting project %s: %w", proj.ID, err)
	}

	c.mu.Lock()
	wasSelected := c.selected != nil && c.selected.ID == proj.ID
	if wasSelected {
		c.selected = nil
		c.selGen++
	}
	c.mu.Unlock()

	if wasSelected {
		c.detail.Reset()
		if c.taskEdit != nil {
			c.taskEdit.Cancel()
		}
	}
	if c.projectEdit != nil {
		c.projectEdit.CancelIf(proj.ID)
	}

	if err := c.Refresh(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	return nil
}

// Reset forgets every project and the selection, e.g. after logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.gen++
	c.selGen++
	c.projects = nil
	c.selected = nil
	c.mu.Unlock()

	c.detail.Reset()
	if c.projectEdit != nil {
		c.projectEdit.Cancel()
	}
	if c.taskEdit != nil {
		c.taskEdit.Cancel()
	}
}
