package task

import "context"

// Gateway is the remote task and progress store.
type Gateway interface {
	ListTasks(ctx context.Context, projectID string) ([]Task, error)
	CreateTask(ctx context.Context, projectID string, fields Fields) (*Task, error)
	UpdateTask(ctx context.Context, taskID string, patch Patch) (*Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	GetProgress(ctx context.Context, projectID string) (*Progress, error)
}

// EditSession is the task edit session, cleared when its task is deleted.
type EditSession interface {
	CancelIf(id string) bool
}
