// Package view renders immutable UI snapshots to strings. Nothing here
// performs I/O or holds state between calls.
package view

import (
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
)

// Pane is the part of the main view that receives navigation keys.
type Pane int

const (
	PaneProjects Pane = iota
	PaneTasks
)

// ProjectDraft is the open project edit session.
type ProjectDraft struct {
	ID     string
	Fields project.Fields
}

// TaskDraft is the open task edit session.
type TaskDraft struct {
	ID     string
	Fields task.Fields
}

// Data is the controller-owned part of a snapshot.
type Data struct {
	Projects    []project.Project
	Selected    *project.Project
	Tasks       []task.Task
	Progress    *task.Progress
	ProjectEdit *ProjectDraft
	TaskEdit    *TaskDraft
}

// FormField is one labelled input. Input is the already rendered input
// line.
type FormField struct {
	Label   string
	Input   string
	Focused bool
}

// Form is the active input form, if any.
type Form struct {
	Title  string
	Fields []FormField
	Hint   string
}

// State is everything Render needs.
type State struct {
	Data

	Pane          Pane
	ProjectCursor int
	TaskCursor    int
	Form          *Form
	Status        string
	StatusIsError bool
	Busy          bool
	Width         int
}

// LoginState is everything RenderLogin needs.
type LoginState struct {
	Email    string
	Password string
	// Focus is 0 for email, 1 for password.
	Focus int
	Error string
	Busy  bool
}
