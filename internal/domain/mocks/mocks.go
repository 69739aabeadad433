package mocks

import (
	"context"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

// ProjectGateway is a mock for project.Gateway.
type ProjectGateway struct {
	mock.Mock
}

func (m *ProjectGateway) ListProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectGateway) CreateProject(ctx context.Context, fields project.Fields) (*project.Project, error) {
	args := m.Called(ctx, fields)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectGateway) UpdateProject(ctx context.Context, id string, fields project.Fields) (*project.Project, error) {
	args := m.Called(ctx, id, fields)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectGateway) DeleteProject(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TaskGateway is a mock for task.Gateway.
type TaskGateway struct {
	mock.Mock
}

func (m *TaskGateway) ListTasks(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) CreateTask(ctx context.Context, projectID string, fields task.Fields) (*task.Task, error) {
	args := m.Called(ctx, projectID, fields)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) UpdateTask(ctx context.Context, taskID string, patch task.Patch) (*task.Task, error) {
	args := m.Called(ctx, taskID, patch)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskGateway) DeleteTask(ctx context.Context, taskID string) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *TaskGateway) GetProgress(ctx context.Context, projectID string) (*task.Progress, error) {
	args := m.Called(ctx, projectID)
	if p, ok := args.Get(0).(*task.Progress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Detail is a mock for project.Detail.
type Detail struct {
	mock.Mock
}

func (m *Detail) LoadFor(ctx context.Context, proj project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *Detail) Reset() {
	m.Called()
}
