package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/rpggio/taskpane/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := &project.Project{
		ID:          "p1",
		Name:        "Launch",
		Description: "Ship it",
		StartDate:   "2024-01-01",
		EndDate:     "2024-06-01",
	}
	require.NoError(t, repo.Create(ctx, "owner1", proj))

	got, err := repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, *proj, *got)

	got.Name = "Relaunch"
	got.EndDate = ""
	require.NoError(t, repo.Update(ctx, "owner1", got))

	got, err = repo.Get(ctx, "owner1", "p1")
	require.NoError(t, err)
	require.Equal(t, "Relaunch", got.Name)
	require.Equal(t, "", got.EndDate)

	require.NoError(t, repo.Delete(ctx, "owner1", "p1"))
	_, err = repo.Get(ctx, "owner1", "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListKeepsCreationOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, "owner1", &project.Project{ID: id, Name: id}))
	}

	projects, err := repo.List(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, projects, 3)
	require.Equal(t, "c", projects[0].ID)
	require.Equal(t, "a", projects[1].ID)
	require.Equal(t, "b", projects[2].ID)
}

func TestProjectRepository_OwnerIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "owner1", &project.Project{ID: "p1", Name: "Mine"}))

	_, err := repo.Get(ctx, "owner2", "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	projects, err := repo.List(ctx, "owner2")
	require.NoError(t, err)
	require.Empty(t, projects)

	require.ErrorIs(t, repo.Update(ctx, "owner2", &project.Project{ID: "p1", Name: "Theirs"}), repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "owner2", "p1"), repository.ErrNotFound)
}

func TestProjectRepository_DuplicateID(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "owner1", &project.Project{ID: "p1", Name: "A"}))
	require.ErrorIs(t, repo.Create(ctx, "owner1", &project.Project{ID: "p1", Name: "B"}), repository.ErrConflict)
}

func TestProjectRepository_RequiresName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.ErrorIs(t, repo.Create(ctx, "owner1", &project.Project{ID: "p1", Name: "  "}), repository.ErrInvalidInput)
	require.NoError(t, repo.Create(ctx, "owner1", &project.Project{ID: "p1", Name: "A"}))
	require.ErrorIs(t, repo.Update(ctx, "owner1", &project.Project{ID: "p1"}), repository.ErrInvalidInput)
}

func TestProjectRepository_DeleteCascadesTasks(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, "owner1", &project.Project{ID: "p1", Name: "A"}))
	require.NoError(t, tasks.Create(ctx, "owner1", &task.Task{ID: "t1", ProjectID: "p1", Title: "T"}))

	require.NoError(t, projects.Delete(ctx, "owner1", "p1"))

	_, err := tasks.Get(ctx, "owner1", "t1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
