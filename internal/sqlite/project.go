package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, ownerID string, proj *project.Project) error {
	if strings.TrimSpace(proj.Name) == "" {
		return fmt.Errorf("project name: %w", repository.ErrInvalidInput)
	}
	query := `
		INSERT INTO projects (id, owner_id, name, description, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		ownerID,
		proj.Name,
		proj.Description,
		proj.StartDate,
		proj.EndDate,
	)
	return insertError(err, "project")
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, ownerID, id string) (*project.Project, error) {
	query := `
		SELECT id, name, description, start_date, end_date
		FROM projects
		WHERE id = ? AND owner_id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&proj.ID,
		&proj.Name,
		&proj.Description,
		&proj.StartDate,
		&proj.EndDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// List returns all projects of an owner in creation order
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]project.Project, error) {
	query := `
		SELECT id, name, description, start_date, end_date
		FROM projects
		WHERE owner_id = ?
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		var proj project.Project
		if err := rows.Scan(&proj.ID, &proj.Name, &proj.Description, &proj.StartDate, &proj.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Update replaces the editable fields of a project
func (r *ProjectRepository) Update(ctx context.Context, ownerID string, proj *project.Project) error {
	if strings.TrimSpace(proj.Name) == "" {
		return fmt.Errorf("project name: %w", repository.ErrInvalidInput)
	}
	query := `
		UPDATE projects
		SET name = ?, description = ?, start_date = ?, end_date = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Description,
		proj.StartDate,
		proj.EndDate,
		proj.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a project and, by cascade, its tasks
func (r *ProjectRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
