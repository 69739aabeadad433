package repository

import (
	"context"
	"time"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
)

// User is an account of the reference server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository manages user accounts
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// TokenRepository manages issued bearer tokens, stored hashed
type TokenRepository interface {
	Issue(ctx context.Context, userID, tokenHash string) error
	Resolve(ctx context.Context, tokenHash string) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
}

// ProjectRepository manages project persistence, scoped per owner
type ProjectRepository interface {
	Create(ctx context.Context, ownerID string, proj *project.Project) error
	Get(ctx context.Context, ownerID, id string) (*project.Project, error)
	List(ctx context.Context, ownerID string) ([]project.Project, error)
	Update(ctx context.Context, ownerID string, proj *project.Project) error
	Delete(ctx context.Context, ownerID, id string) error
}

// TaskRepository manages task persistence, scoped per owner
type TaskRepository interface {
	Create(ctx context.Context, ownerID string, t *task.Task) error
	Get(ctx context.Context, ownerID, id string) (*task.Task, error)
	ListByProject(ctx context.Context, ownerID, projectID string) ([]task.Task, error)
	Update(ctx context.Context, ownerID string, t *task.Task) error
	Delete(ctx context.Context, ownerID, id string) error
	Progress(ctx context.Context, ownerID, projectID string) (*task.Progress, error)
}
