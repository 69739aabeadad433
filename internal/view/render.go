package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
)

const barWidth = 20

// Placeholder texts.
const (
	NoDescription = "No description provided."
	NoTasks       = "No tasks yet. Create your first task below."
	NoProjects    = "No projects yet. Press n to create one."
	NoSelection   = "Select a project to see its tasks."
	MissingDate   = "–"
)

// Render draws the main view.
func Render(s State) string {
	left := renderProjects(s)
	right := renderDetail(s)

	leftStyle, rightStyle := paneStyle, paneStyle
	if s.Pane == PaneProjects {
		leftStyle = focusedPane
	} else {
		rightStyle = focusedPane
	}
	if s.Width > 0 {
		leftWidth := s.Width / 3
		leftStyle = leftStyle.Width(leftWidth)
		rightStyle = rightStyle.Width(max(s.Width-leftWidth-4, 20))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("taskpane"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftStyle.Render(left), rightStyle.Render(right)))
	b.WriteString("\n")
	if s.Form != nil {
		b.WriteString(renderForm(*s.Form))
		b.WriteString("\n")
	}
	b.WriteString(renderStatus(s))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(helpLine(s)))
	return b.String()
}

func renderProjects(s State) string {
	lines := []string{headingStyle.Render("Projects")}
	if len(s.Projects) == 0 {
		lines = append(lines, mutedStyle.Render(NoProjects))
		return strings.Join(lines, "\n")
	}
	for i, p := range s.Projects {
		cursor := "  "
		if s.Pane == PaneProjects && i == s.ProjectCursor {
			cursor = "> "
		}
		name := p.Name
		if s.Selected != nil && s.Selected.ID == p.ID {
			name = activeStyle.Render("● " + name)
		}
		line := cursor + name
		if s.ProjectEdit != nil && s.ProjectEdit.ID == p.ID {
			line += " " + editingStyle.Render("(editing)")
		}
		lines = append(lines, line)
		lines = append(lines, "    "+mutedStyle.Render(DateRange(p.StartDate, p.EndDate)))
	}
	return strings.Join(lines, "\n")
}

func renderDetail(s State) string {
	if s.Selected == nil {
		return mutedStyle.Render(NoSelection)
	}
	p := *s.Selected

	lines := []string{headingStyle.Render(p.Name)}
	if p.Description == "" {
		lines = append(lines, mutedStyle.Render(NoDescription))
	} else {
		lines = append(lines, p.Description)
	}
	lines = append(lines, mutedStyle.Render(DateRange(p.StartDate, p.EndDate)), "")

	if s.Progress != nil {
		lines = append(lines, ProgressLine(*s.Progress), progressBar(*s.Progress), "")
	}

	lines = append(lines, headingStyle.Render(TaskCount(len(s.Tasks))))
	if len(s.Tasks) == 0 {
		lines = append(lines, mutedStyle.Render(NoTasks))
	}
	for i, t := range s.Tasks {
		lines = append(lines, renderTask(s, i, t)...)
	}
	return strings.Join(lines, "\n")
}

func renderTask(s State, i int, t task.Task) []string {
	cursor := "  "
	if s.Pane == PaneTasks && i == s.TaskCursor {
		cursor = "> "
	}
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	line := cursor + box + " " + title
	if s.TaskEdit != nil && s.TaskEdit.ID == t.ID {
		line += " " + editingStyle.Render("(editing)")
	}
	lines := []string{line}
	if t.Description != "" {
		lines = append(lines, "      "+mutedStyle.Render(t.Description))
	}
	return lines
}

func renderForm(f Form) string {
	lines := []string{headingStyle.Render(f.Title)}
	for _, field := range f.Fields {
		label := field.Label + ":"
		if field.Focused {
			label = titleStyle.Render(label)
		}
		lines = append(lines, label+" "+field.Input)
	}
	if f.Hint != "" {
		lines = append(lines, mutedStyle.Render(f.Hint))
	}
	return formStyle.Render(strings.Join(lines, "\n"))
}

func renderStatus(s State) string {
	switch {
	case s.Busy:
		return mutedStyle.Render("Working…")
	case s.Status == "":
		return ""
	case s.StatusIsError:
		return errorStyle.Render(s.Status)
	default:
		return s.Status
	}
}

func helpLine(s State) string {
	if s.Form != nil {
		return "tab next field • enter save • esc cancel"
	}
	if s.Pane == PaneTasks {
		return "↑/↓ move • space toggle • n new task • e edit • d delete • tab projects • L logout • q quit"
	}
	return "↑/↓ move • enter open • n new project • e edit • d delete • r refresh • tab tasks • L logout • q quit"
}

// DateRange formats a project's dates as "start → end".
func DateRange(start, end string) string {
	if start == "" {
		start = MissingDate
	}
	if end == "" {
		end = MissingDate
	}
	return start + " → " + end
}

// TaskCount formats the task list header.
func TaskCount(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// ProgressLine formats the completion summary. Zero is shown as "0%".
func ProgressLine(p task.Progress) string {
	if p.Percentage == 0 {
		return fmt.Sprintf("%d of %d tasks completed (0%%)", p.CompletedTasks, p.TotalTasks)
	}
	return fmt.Sprintf("%d of %d tasks completed (%.1f%%)", p.CompletedTasks, p.TotalTasks, p.Percentage)
}

func progressBar(p task.Progress) string {
	filled := int(math.Round(p.Percentage / 100 * barWidth))
	filled = min(max(filled, 0), barWidth)
	fill := barFillStyle
	if p.Complete() {
		fill = barDoneStyle
	}
	return fill.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// FieldsSummary renders project fields on one line, for confirmations.
func FieldsSummary(f project.Fields) string {
	return fmt.Sprintf("%s (%s)", f.Name, DateRange(f.StartDate, f.EndDate))
}
