package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/view"
)

type formKind int

const (
	formNewProject formKind = iota
	formEditProject
	formNewTask
	formEditTask
)

func (k formKind) title() string {
	switch k {
	case formEditProject:
		return "Edit project"
	case formNewTask:
		return "New task"
	case formEditTask:
		return "Edit task"
	default:
		return "New project"
	}
}

type form struct {
	kind   formKind
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	in.Cursor.SetMode(cursor.CursorStatic)
	in.SetValue(value)
	in.CursorEnd()
	return in
}

func newProjectForm(kind formKind, f project.Fields) *form {
	return newForm(kind,
		[]string{"Name", "Description", "Start date", "End date"},
		[]textinput.Model{
			newInput("Project name", f.Name),
			newInput("Optional", f.Description),
			newInput("YYYY-MM-DD", f.StartDate),
			newInput("YYYY-MM-DD", f.EndDate),
		})
}

func newTaskForm(kind formKind, f task.Fields) *form {
	return newForm(kind,
		[]string{"Title", "Description"},
		[]textinput.Model{
			newInput("Task title", f.Title),
			newInput("Optional", f.Description),
		})
}

func newForm(kind formKind, labels []string, inputs []textinput.Model) *form {
	f := &form{kind: kind, labels: labels, inputs: inputs}
	f.inputs[0].Focus()
	return f
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) value(i int) string {
	return f.inputs[i].Value()
}

func (f *form) projectFields() project.Fields {
	return project.Fields{
		Name:        f.value(0),
		Description: f.value(1),
		StartDate:   f.value(2),
		EndDate:     f.value(3),
	}
}

func (f *form) taskFields() task.Fields {
	return task.Fields{Title: f.value(0), Description: f.value(1)}
}

func (f *form) isProject() bool {
	return f.kind == formNewProject || f.kind == formEditProject
}

func (f *form) render() *view.Form {
	out := &view.Form{Title: f.kind.title(), Hint: "dates are YYYY-MM-DD; leave empty for none"}
	if !f.isProject() {
		out.Hint = ""
	}
	for i, in := range f.inputs {
		out.Fields = append(out.Fields, view.FormField{
			Label:   f.labels[i],
			Input:   in.View(),
			Focused: i == f.focus,
		})
	}
	return out
}
