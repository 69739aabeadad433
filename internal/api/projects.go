package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rpggio/taskpane/internal/domain/project"
)

// ListProjects returns every project in server order.
func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	const path = "/projects"
	var wire []wireProject
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}
	projects := make([]project.Project, 0, len(wire))
	for _, w := range wire {
		p, err := w.toProject()
		if err != nil {
			return nil, invalid(http.MethodGet, path, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// CreateProject creates a project and returns it with its server id.
func (c *Client) CreateProject(ctx context.Context, fields project.Fields) (*project.Project, error) {
	return c.sendProject(ctx, http.MethodPost, "/projects", fields)
}

// UpdateProject replaces every editable field of the project.
func (c *Client) UpdateProject(ctx context.Context, id string, fields project.Fields) (*project.Project, error) {
	return c.sendProject(ctx, http.MethodPut, projectPath(id), fields)
}

// DeleteProject deletes the project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, projectPath(id), nil, nil)
}

func (c *Client) sendProject(ctx context.Context, method, path string, fields project.Fields) (*project.Project, error) {
	var wire wireProject
	if err := c.do(ctx, method, path, fields, &wire); err != nil {
		return nil, err
	}
	p, err := wire.toProject()
	if err != nil {
		return nil, invalid(method, path, err)
	}
	return &p, nil
}

func projectPath(id string) string {
	return "/projects/" + url.PathEscape(id)
}
