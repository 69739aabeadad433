package project

import "errors"

var (
	// ErrRefreshFailed marks an error from the refresh that follows a
	// mutation the server already accepted.
	ErrRefreshFailed = errors.New("project list refresh failed")
	// ErrProjectNotFound indicates the project is not in the current list.
	ErrProjectNotFound = errors.New("project not found")
)
