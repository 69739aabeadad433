package project

import "context"

// Gateway is the remote project store.
type Gateway interface {
	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, fields Fields) (*Project, error)
	UpdateProject(ctx context.Context, id string, fields Fields) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// Detail owns the task and progress state of the selected project.
type Detail interface {
	LoadFor(ctx context.Context, proj Project) error
	Reset()
}

// EditSession is an edit session the controller must clear when the
// entity it references goes away.
type EditSession interface {
	Cancel()
	CancelIf(id string) bool
}
