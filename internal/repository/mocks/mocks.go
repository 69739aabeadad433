package mocks

import (
	"context"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/repository"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *repository.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*repository.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// TokenRepository is a mock for repository.TokenRepository.
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Issue(ctx context.Context, userID, tokenHash string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *TokenRepository) Resolve(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *TokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, ownerID string, proj *project.Project) error {
	args := m.Called(ctx, ownerID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, ownerID, id string) (*project.Project, error) {
	args := m.Called(ctx, ownerID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, ownerID string) ([]project.Project, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, ownerID string, proj *project.Project) error {
	args := m.Called(ctx, ownerID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// TaskRepository is a mock for repository.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, ownerID string, t *task.Task) error {
	args := m.Called(ctx, ownerID, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, ownerID, id string) (*task.Task, error) {
	args := m.Called(ctx, ownerID, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, ownerID, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, ownerID string, t *task.Task) error {
	args := m.Called(ctx, ownerID, t)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *TaskRepository) Progress(ctx context.Context, ownerID, projectID string) (*task.Progress, error) {
	args := m.Called(ctx, ownerID, projectID)
	if p, ok := args.Get(0).(*task.Progress); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
