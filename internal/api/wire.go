package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
)

const dateLayout = "2006-01-02"

// flexID accepts identifiers encoded as JSON strings or numbers.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

type wireProject struct {
	ID          flexID  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

func (w wireProject) toProject() (project.Project, error) {
	if w.ID == "" {
		return project.Project{}, fmt.Errorf("project without id")
	}
	p := project.Project{
		ID:          string(w.ID),
		Name:        w.Name,
		Description: deref(w.Description),
		StartDate:   deref(w.StartDate),
		EndDate:     deref(w.EndDate),
	}
	if err := checkDate(p.StartDate); err != nil {
		return project.Project{}, fmt.Errorf("project %s startDate: %w", p.ID, err)
	}
	if err := checkDate(p.EndDate); err != nil {
		return project.Project{}, fmt.Errorf("project %s endDate: %w", p.ID, err)
	}
	return p, nil
}

type wireTask struct {
	ID          flexID  `json:"id"`
	ProjectID   flexID  `json:"projectId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (w wireTask) toTask() (task.Task, error) {
	if w.ID == "" {
		return task.Task{}, fmt.Errorf("task without id")
	}
	if w.Completed == nil {
		return task.Task{}, fmt.Errorf("task %s without completed flag", w.ID)
	}
	return task.Task{
		ID:          string(w.ID),
		ProjectID:   string(w.ProjectID),
		Title:       w.Title,
		Description: deref(w.Description),
		Completed:   *w.Completed,
	}, nil
}

type wireProgress struct {
	CompletedTasks *int     `json:"completedTasks"`
	TotalTasks     *int     `json:"totalTasks"`
	Percentage     *float64 `json:"percentage"`
}

func (w wireProgress) toProgress() (task.Progress, error) {
	if w.CompletedTasks == nil || w.TotalTasks == nil {
		return task.Progress{}, fmt.Errorf("progress without task counts")
	}
	p := task.Progress{CompletedTasks: *w.CompletedTasks, TotalTasks: *w.TotalTasks}
	if w.Percentage != nil {
		p.Percentage = *w.Percentage
	}
	if p.CompletedTasks < 0 || p.TotalTasks < 0 || p.CompletedTasks > p.TotalTasks {
		return task.Progress{}, fmt.Errorf("progress counts out of range: %d of %d", p.CompletedTasks, p.TotalTasks)
	}
	if p.Percentage < 0 || p.Percentage > 100 {
		return task.Progress{}, fmt.Errorf("progress percentage out of range: %v", p.Percentage)
	}
	return p, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// newTaskRequest always carries completed=false; new tasks start open.
type newTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func checkDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("not a calendar date: %q", s)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
