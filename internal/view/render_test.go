package view

import (
	"strings"
	"testing"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func sampleState() State {
	launch := project.Project{ID: "p1", Name: "Launch", StartDate: "2024-01-01", EndDate: "2024-06-01"}
	return State{
		Data: Data{
			Projects: []project.Project{launch, {ID: "p2", Name: "Backlog"}},
			Selected: &launch,
		},
	}
}

func TestRender_EmptyProjectDetail(t *testing.T) {
	s := sampleState()
	s.Progress = &task.Progress{}

	out := Render(s)
	require.Contains(t, out, "Launch")
	require.Contains(t, out, NoDescription)
	require.Contains(t, out, "2024-01-01 → 2024-06-01")
	require.Contains(t, out, "– → –", "project without dates")
	require.Contains(t, out, "0 tasks")
	require.Contains(t, out, NoTasks)
	require.Contains(t, out, "0 of 0 tasks completed (0%)")
}

func TestRender_TasksAndProgress(t *testing.T) {
	s := sampleState()
	s.Selected.Description = "Ship the thing"
	s.Tasks = []task.Task{
		{ID: "t1", Title: "Write docs", Completed: true},
		{ID: "t2", Title: "Review", Description: "with team"},
		{ID: "t3", Title: "Publish"},
	}
	s.Progress = &task.Progress{CompletedTasks: 1, TotalTasks: 3, Percentage: 100.0 / 3}

	out := Render(s)
	require.Contains(t, out, "Ship the thing")
	require.NotContains(t, out, NoDescription)
	require.Contains(t, out, "3 tasks")
	require.Contains(t, out, "[x] Write docs")
	require.Contains(t, out, "[ ] Review")
	require.Contains(t, out, "with team")
	require.Contains(t, out, "1 of 3 tasks completed (33.3%)")
	require.NotContains(t, out, NoTasks)
}

func TestRender_NoSelection(t *testing.T) {
	s := sampleState()
	s.Selected = nil

	out := Render(s)
	require.Contains(t, out, NoSelection)
	require.NotContains(t, out, "●")
}

func TestRender_NoProjects(t *testing.T) {
	out := Render(State{})
	require.Contains(t, out, NoProjects)
	require.Contains(t, out, NoSelection)
}

func TestRender_MarksSelectedAndEditing(t *testing.T) {
	s := sampleState()
	s.ProjectEdit = &ProjectDraft{ID: "p2", Fields: project.Fields{Name: "Backlog"}}
	s.Tasks = []task.Task{{ID: "t1", Title: "Only"}}
	s.TaskEdit = &TaskDraft{ID: "t1"}

	out := Render(s)
	require.Contains(t, out, "● Launch")
	require.Contains(t, out, "Backlog (editing)")
	require.Contains(t, out, "[ ] Only (editing)")
	require.Contains(t, out, "1 task")
	require.NotContains(t, out, "1 tasks")
}

func TestRender_CursorFollowsPane(t *testing.T) {
	s := sampleState()
	s.Tasks = []task.Task{{ID: "t1", Title: "A"}, {ID: "t2", Title: "B"}}
	s.ProjectCursor = 1
	s.TaskCursor = 1

	out := Render(s)
	require.Contains(t, out, "> Backlog")
	require.NotContains(t, out, "> [ ] B")

	s.Pane = PaneTasks
	out = Render(s)
	require.NotContains(t, out, "> Backlog")
	require.Contains(t, out, "> [ ] B")
}

func TestRender_FormAndStatus(t *testing.T) {
	s := sampleState()
	s.Form = &Form{
		Title: "New task",
		Fields: []FormField{
			{Label: "Title", Input: "Write docs", Focused: true},
			{Label: "Description", Input: ""},
		},
	}
	s.Status = "Rejected: title is required"
	s.StatusIsError = true

	out := Render(s)
	require.Contains(t, out, "New task")
	require.Contains(t, out, "Title: Write docs")
	require.Contains(t, out, "Rejected: title is required")
	require.Contains(t, out, "esc cancel")
}

func TestRender_Busy(t *testing.T) {
	s := sampleState()
	s.Busy = true
	s.Status = "ignored while busy"
	out := Render(s)
	require.Contains(t, out, "Working…")
	require.NotContains(t, out, "ignored while busy")
}

func TestProgressBar(t *testing.T) {
	full := progressBar(task.Progress{CompletedTasks: 2, TotalTasks: 2, Percentage: 100})
	require.Equal(t, barWidth, strings.Count(full, "█"))
	require.Zero(t, strings.Count(full, "░"))

	empty := progressBar(task.Progress{})
	require.Zero(t, strings.Count(empty, "█"))
	require.Equal(t, barWidth, strings.Count(empty, "░"))

	half := progressBar(task.Progress{CompletedTasks: 1, TotalTasks: 2, Percentage: 50})
	require.Equal(t, barWidth/2, strings.Count(half, "█"))
}

func TestFormatting(t *testing.T) {
	require.Equal(t, "2024-01-01 → –", DateRange("2024-01-01", ""))
	require.Equal(t, "0 tasks", TaskCount(0))
	require.Equal(t, "1 task", TaskCount(1))
	require.Equal(t, "2 tasks", TaskCount(2))
	require.Equal(t, "0 of 2 tasks completed (0%)", ProgressLine(task.Progress{TotalTasks: 2}))
	require.Equal(t, "1 of 1 tasks completed (100.0%)", ProgressLine(task.Progress{CompletedTasks: 1, TotalTasks: 1, Percentage: 100}))
	require.Equal(t, "Launch (2024-01-01 → –)", FieldsSummary(project.Fields{Name: "Launch", StartDate: "2024-01-01"}))
}

func TestRenderLogin(t *testing.T) {
	out := RenderLogin(LoginState{Email: "test@hahn.com", Password: "password123"})
	require.Contains(t, out, "test@hahn.com")
	require.NotContains(t, out, "password123")
	require.Contains(t, out, strings.Repeat("•", len("password123")))

	out = RenderLogin(LoginState{Email: "test@hahn.com", Password: "x", Error: "Invalid credentials"})
	require.Contains(t, out, "Invalid credentials")
	require.Contains(t, out, "test@hahn.com", "form keeps its values")
}
