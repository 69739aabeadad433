package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/rpggio/taskpane/internal/api"
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/view"
)

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
	done  = color.New(color.FgGreen)
	fail  = color.New(color.FgRed, color.Bold)
)

func printProjects(w io.Writer, projects []project.Project) {
	if len(projects) == 0 {
		_, _ = faint.Fprintln(w, "No projects yet.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Dates"), bold.Sprint("Description"))
	for _, p := range projects {
		desc := p.Description
		if desc == "" {
			desc = faint.Sprint(view.NoDescription)
		}
		tbl.AddRow(p.ID, p.Name, view.DateRange(p.StartDate, p.EndDate), desc)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		_, _ = faint.Fprintln(w, "No tasks yet.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Title"))
	for _, t := range tasks {
		box, title := "[ ]", t.Title
		if t.Completed {
			box, title = done.Sprint("[x]"), faint.Sprint(t.Title)
		}
		tbl.AddRow(box, t.ID, title)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = faint.Fprintln(w, view.TaskCount(len(tasks)))
}

func printProgress(w io.Writer, p task.Progress) {
	line := view.ProgressLine(p)
	if p.Complete() {
		line = done.Sprint(line)
	}
	_, _ = fmt.Fprintln(w, line)
}

// printError writes err the way the UI status line would phrase it.
func printError(w io.Writer, err error) {
	msg := err.Error()
	var le loginError
	if !errors.As(err, &le) && !errors.Is(err, ErrNotSignedIn) {
		if m := api.Message(err); m != "" {
			msg = m
		}
	}
	_, _ = fail.Fprintln(w, "error: "+msg)
}
