package task

// Task is a unit of work scoped to one project.
type Task struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Fields holds the fields a new task is created with.
type Fields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Patch is a partial task update; nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Empty reports whether p changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Progress is the server-computed completion snapshot of a project.
type Progress struct {
	CompletedTasks int     `json:"completedTasks"`
	TotalTasks     int     `json:"totalTasks"`
	Percentage     float64 `json:"percentage"`
}

// Complete reports whether every task is done and there is at least one.
func (p Progress) Complete() bool {
	return p.TotalTasks > 0 && p.Percentage >= 100
}
