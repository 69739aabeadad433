package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/taskpane/internal/domain/task"
)

// ListTasks returns the tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]task.Task, error) {
	path := projectPath(projectID) + "/tasks"
	var wire []wireTask
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(wire))
	for _, w := range wire {
		t, err := w.toTask()
		if err != nil {
			return nil, invalid(http.MethodGet, path, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// CreateTask creates an open task in a project.
func (c *Client) CreateTask(ctx context.Context, projectID string, fields task.Fields) (*task.Task, error) {
	path := projectPath(projectID) + "/tasks"
	body := newTaskRequest{Title: fields.Title, Description: fields.Description}
	return c.sendTask(ctx, http.MethodPost, path, body)
}

// UpdateTask sends the non-nil fields of patch.
func (c *Client) UpdateTask(ctx context.Context, taskID string, patch task.Patch) (*task.Task, error) {
	return c.sendTask(ctx, http.MethodPut, taskPath(taskID), patch)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, taskPath(taskID), nil, nil)
}

// GetProgress returns the completion snapshot of a project.
func (c *Client) GetProgress(ctx context.Context, projectID string) (*task.Progress, error) {
	path := projectPath(projectID) + "/progress"
	var wire wireProgress
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}
	p, err := wire.toProgress()
	if err != nil {
		return nil, invalid(http.MethodGet, path, err)
	}
	return &p, nil
}

func (c *Client) sendTask(ctx context.Context, method, path string, body any) (*task.Task, error) {
	var wire wireTask
	if err := c.do(ctx, method, path, body, &wire); err != nil {
		return nil, err
	}
	t, err := wire.toTask()
	if err != nil {
		return nil, invalid(method, path, err)
	}
	return &t, nil
}

func taskPath(id string) string {
	return "/projects/tasks/" + url.PathEscape(id)
}
