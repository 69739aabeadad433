package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/repository"
)

// TaskRepository implements repository.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task. The owning project must exist for the same owner.
func (r *TaskRepository) Create(ctx context.Context, ownerID string, t *task.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title: %w", repository.ErrInvalidInput)
	}
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE id = ? AND owner_id = ?`,
		t.ProjectID, ownerID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if exists == 0 {
		return repository.ErrNotFound
	}

	query := `
		INSERT INTO tasks (id, owner_id, project_id, title, description, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		ownerID,
		t.ProjectID,
		t.Title,
		t.Description,
		boolToInt(t.Completed),
	)
	return insertError(err, "task")
}

// Get retrieves a task by ID
func (r *TaskRepository) Get(ctx context.Context, ownerID, id string) (*task.Task, error) {
	query := `
		SELECT id, project_id, title, description, completed
		FROM tasks
		WHERE id = ? AND owner_id = ?
	`

	var t task.Task
	var completed int
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&completed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	t.Completed = completed != 0
	return &t, nil
}

// ListByProject returns the tasks of a project in creation order
func (r *TaskRepository) ListByProject(ctx context.Context, ownerID, projectID string) ([]task.Task, error) {
	query := `
		SELECT id, project_id, title, description, completed
		FROM tasks
		WHERE owner_id = ? AND project_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		var t task.Task
		var completed int
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Completed = completed != 0
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

// Update replaces the mutable fields of a task
func (r *TaskRepository) Update(ctx context.Context, ownerID string, t *task.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title: %w", repository.ErrInvalidInput)
	}
	query := `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?
		WHERE id = ? AND owner_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Description,
		boolToInt(t.Completed),
		t.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireAffected(result)
}

// Progress computes the completion snapshot of a project. A project with
// no tasks reports 0%.
func (r *TaskRepository) Progress(ctx context.Context, ownerID, projectID string) (*task.Progress, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE id = ? AND owner_id = ?`,
		projectID, ownerID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if exists == 0 {
		return nil, repository.ErrNotFound
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(completed), 0)
		FROM tasks
		WHERE owner_id = ? AND project_id = ?
	`
	var p task.Progress
	if err := r.db.QueryRowContext(ctx, query, ownerID, projectID).Scan(&p.TotalTasks, &p.CompletedTasks); err != nil {
		return nil, fmt.Errorf("failed to compute progress: %w", err)
	}
	if p.TotalTasks > 0 {
		p.Percentage = float64(p.CompletedTasks) * 100 / float64(p.TotalTasks)
	}
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
