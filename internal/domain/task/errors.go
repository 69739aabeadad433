package task

import "errors"

var (
	// ErrNoProject indicates a task operation without a loaded project.
	ErrNoProject = errors.New("no project selected")
	// ErrTaskNotFound indicates a task id that is not in the loaded list.
	ErrTaskNotFound = errors.New("task not found")
	// ErrResyncFailed marks an error from the reload that follows a task
	// mutation the server already accepted.
	ErrResyncFailed = errors.New("task resync failed")
)
