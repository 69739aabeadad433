package edit_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/taskpane/internal/domain/edit"
	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeProjects struct {
	calls []project.Fields
	err   error
}

func (f *fakeProjects) Update(_ context.Context, id string, fields project.Fields) (*project.Project, error) {
	f.calls = append(f.calls, fields)
	if f.err != nil {
		return nil, f.err
	}
	p := project.Project{ID: id}.WithFields(fields)
	return &p, nil
}

type fakeTasks struct {
	patches []task.Patch
	err     error
}

func (f *fakeTasks) UpdateTask(_ context.Context, id string, patch task.Patch) (*task.Task, error) {
	f.patches = append(f.patches, patch)
	if f.err != nil {
		return nil, f.err
	}
	return &task.Task{ID: id}, nil
}

func TestSession_BeginSeedsDraft(t *testing.T) {
	s := edit.NewProjectSession(&fakeProjects{}, nil)
	p := project.Project{ID: "p", Name: "Launch", StartDate: "2024-01-01"}

	s.Begin(p)

	id, draft, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "p", id)
	require.Equal(t, project.Fields{Name: "Launch", StartDate: "2024-01-01"}, draft)
	require.Equal(t, "editing", s.State().String())
}

func TestSession_BeginReplacesPrevious(t *testing.T) {
	s := edit.NewProjectSession(&fakeProjects{}, nil)
	x := project.Project{ID: "x", Name: "X"}
	y := project.Project{ID: "y", Name: "Y"}

	s.Begin(x)
	s.UpdateDraft(func(d *project.Fields) { d.Name = "X edited" })
	s.Begin(y)

	require.False(t, s.IsEditing("x"))
	require.True(t, s.IsEditing("y"))
	_, draft, _ := s.Current()
	require.Equal(t, "Y", draft.Name)

	s.Begin(x)
	_, draft, _ = s.Current()
	require.Equal(t, "X", draft.Name, "discarded draft must not come back")
}

func TestSession_UpdateDraftIdleIsNoop(t *testing.T) {
	s := edit.NewTaskSession(&fakeTasks{}, nil)
	called := false
	s.UpdateDraft(func(*task.Fields) { called = true })
	require.False(t, called)
	require.Equal(t, edit.Idle, s.State())
}

func TestSession_Cancel(t *testing.T) {
	s := edit.NewTaskSession(&fakeTasks{}, nil)
	s.Begin(task.Task{ID: "t1", Title: "a"})
	s.Cancel()

	_, draft, ok := s.Current()
	require.False(t, ok)
	require.Equal(t, task.Fields{}, draft)
}

func TestSession_CancelIf(t *testing.T) {
	s := edit.NewTaskSession(&fakeTasks{}, nil)
	s.Begin(task.Task{ID: "t1"})

	require.False(t, s.CancelIf("t2"))
	require.True(t, s.IsEditing("t1"))
	require.True(t, s.CancelIf("t1"))
	require.Equal(t, edit.Idle, s.State())
}

func TestSession_ProjectCommitSendsFullDraft(t *testing.T) {
	updater := &fakeProjects{}
	s := edit.NewProjectSession(updater, nil)
	p := project.Project{ID: "p", Name: "Old", Description: "keep", StartDate: "2024-01-01", EndDate: "2024-06-01"}

	s.Begin(p)
	s.UpdateDraft(func(d *project.Fields) { d.Name = "New" })
	require.NoError(t, s.Commit(context.Background(), p))

	require.Equal(t, []project.Fields{{Name: "New", Description: "keep", StartDate: "2024-01-01", EndDate: "2024-06-01"}}, updater.calls)
	require.Equal(t, edit.Idle, s.State())
}

func TestSession_CommitFailureStaysEditing(t *testing.T) {
	updater := &fakeProjects{err: errBoom}
	s := edit.NewProjectSession(updater, nil)
	p := project.Project{ID: "p", Name: "Old"}

	s.Begin(p)
	s.UpdateDraft(func(d *project.Fields) { d.Name = "New" })
	require.ErrorIs(t, s.Commit(context.Background(), p), errBoom)

	id, draft, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "p", id)
	require.Equal(t, "New", draft.Name)

	updater.err = nil
	require.NoError(t, s.Commit(context.Background(), p))
	require.Equal(t, edit.Idle, s.State())
}

func TestSession_CommitAcceptedButRefreshFailedGoesIdle(t *testing.T) {
	updater := &fakeProjects{err: fmt.Errorf("%w: %w", project.ErrRefreshFailed, errBoom)}
	s := edit.NewProjectSession(updater, nil)
	p := project.Project{ID: "p"}

	s.Begin(p)
	err := s.Commit(context.Background(), p)
	require.ErrorIs(t, err, project.ErrRefreshFailed)
	require.Equal(t, edit.Idle, s.State())
}

func TestSession_CommitRequiresOpenSession(t *testing.T) {
	s := edit.NewProjectSession(&fakeProjects{}, nil)
	require.ErrorIs(t, s.Commit(context.Background(), project.Project{ID: "p"}), edit.ErrNotEditing)

	s.Begin(project.Project{ID: "q"})
	require.ErrorIs(t, s.Commit(context.Background(), project.Project{ID: "p"}), edit.ErrNotEditing)
	require.True(t, s.IsEditing("q"))
}

func TestSession_TaskCommitUsesCommittedCompletedFlag(t *testing.T) {
	updater := &fakeTasks{}
	s := edit.NewTaskSession(updater, nil)
	tk := task.Task{ID: "t1", Title: "Old", Description: "", Completed: true}

	s.Begin(tk)
	s.UpdateDraft(func(d *task.Fields) {
		d.Title = "New"
		d.Description = "details"
	})
	require.NoError(t, s.Commit(context.Background(), tk))

	require.Len(t, updater.patches, 1)
	patch := updater.patches[0]
	require.Equal(t, "New", *patch.Title)
	require.Equal(t, "details", *patch.Description)
	require.True(t, *patch.Completed)
	require.Equal(t, edit.Idle, s.State())
}

func TestSession_TaskCommitResyncFailureGoesIdle(t *testing.T) {
	updater := &fakeTasks{err: fmt.Errorf("%w: %w", task.ErrResyncFailed, errBoom)}
	s := edit.NewTaskSession(updater, nil)
	tk := task.Task{ID: "t1"}

	s.Begin(tk)
	require.ErrorIs(t, s.Commit(context.Background(), tk), task.ErrResyncFailed)
	require.Equal(t, edit.Idle, s.State())
}

type blockingProjects struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingProjects) Update(_ context.Context, id string, fields project.Fields) (*project.Project, error) {
	close(b.started)
	<-b.release
	return &project.Project{ID: id}, nil
}

func TestSession_SlowCommitDoesNotCloseNewerSession(t *testing.T) {
	updater := &blockingProjects{started: make(chan struct{}), release: make(chan struct{})}
	s := edit.NewProjectSession(updater, nil)
	p := project.Project{ID: "p"}

	s.Begin(p)
	done := make(chan error, 1)
	go func() { done <- s.Commit(context.Background(), p) }()
	<-updater.started

	s.Begin(p)
	s.UpdateDraft(func(d *project.Fields) { d.Name = "second pass" })
	close(updater.release)
	require.NoError(t, <-done)

	_, draft, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "second pass", draft.Name)
}
