package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rpggio/taskpane/internal/domain/project"
	"github.com/rpggio/taskpane/internal/domain/task"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recorded struct {
	method, path, auth, contentType, requestID string
	body                                      string
}

type recorder struct {
	mu       sync.Mutex
	requests []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.requests...)
}

func newRecordingServer(t *testing.T, status int, response string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.requests = append(rec.requests, recorded{
			method:      r.Method,
			path:        r.URL.EscapedPath(),
			auth:        r.Header.Get("Authorization"),
			contentType: r.Header.Get("Content-Type"),
			requestID:   r.Header.Get("X-Request-ID"),
			body:        string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestClient_AttachesBearerWhenTokenPresent(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `[]`)
	c := New(srv.URL, staticToken("abc"))

	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	got := reqs.all()
	require.Len(t, got, 1)
	require.Equal(t, "Bearer abc", got[0].auth)
	require.Equal(t, "application/json", got[0].contentType)
	require.NotEmpty(t, got[0].requestID)
}

func TestClient_OmitsHeaderWithoutToken(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `[]`)

	for _, tokens := range []TokenSource{nil, staticToken("")} {
		c := New(srv.URL, tokens)
		_, err := c.ListProjects(context.Background())
		require.NoError(t, err)
	}
	require.Len(t, reqs.all(), 2)
	for _, r := range reqs.all() {
		require.Empty(t, r.auth)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrValidationFailed},
		{http.StatusConflict, ErrValidationFailed},
		{http.StatusUnprocessableEntity, ErrValidationFailed},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}
	for _, tc := range cases {
		srv, _ := newRecordingServer(t, tc.status, `{"message":"nope"}`)
		c := New(srv.URL, staticToken("abc"))

		_, err := c.ListProjects(context.Background())
		require.ErrorIs(t, err, tc.kind, "status %d", tc.status)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		require.Equal(t, tc.status, se.Status)
		require.Equal(t, "nope", se.Message)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.ListProjects(context.Background())
	require.ErrorIs(t, err, ErrNetwork)
	require.Equal(t, "Cannot reach the server", Message(err))
}

func TestClient_LoginRejectedIsInvalidCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest, http.StatusInternalServerError} {
		srv, reqs := newRecordingServer(t, status, `{"message":"bad"}`)
		c := New(srv.URL, nil)

		token, err := c.Login(context.Background(), "a@b.c", "pw")
		require.ErrorIs(t, err, ErrInvalidCredentials, "status %d", status)
		require.Empty(t, token)
		require.Equal(t, "Invalid credentials", LoginMessage(err))

		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(reqs.all()[0].body), &body))
		require.Equal(t, map[string]string{"email": "a@b.c", "password": "pw"}, body)
	}
}

func TestClient_LoginTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrNetwork)
	require.Equal(t, "Login failed", LoginMessage(err))
}

func TestClient_LoginWithoutToken(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `{}`)
	_, err := New(srv.URL, nil).Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestClient_NumericIDs(t *testing.T) {
	srv, _ := newRecordingServer(t, http.StatusOK, `[{"id":42,"name":"A","description":null,"startDate":"2024-01-01","endDate":null}]`)
	c := New(srv.URL, nil)

	projects, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, []project.Project{{ID: "42", Name: "A", StartDate: "2024-01-01"}}, projects)
}

func TestClient_SchemaMismatch(t *testing.T) {
	cases := []struct {
		name string
		body string
		call func(*Client) error
	}{
		{"not an array", `{"id":"1"}`, func(c *Client) error { _, err := c.ListProjects(context.Background()); return err }},
		{"missing id", `[{"name":"A"}]`, func(c *Client) error { _, err := c.ListProjects(context.Background()); return err }},
		{"bad date", `[{"id":"1","name":"A","startDate":"Jan 1"}]`, func(c *Client) error { _, err := c.ListProjects(context.Background()); return err }},
		{"task without completed", `[{"id":"t","title":"x"}]`, func(c *Client) error { _, err := c.ListTasks(context.Background(), "p"); return err }},
		{"progress out of range", `{"completedTasks":3,"totalTasks":1,"percentage":300}`, func(c *Client) error { _, err := c.GetProgress(context.Background(), "p"); return err }},
		{"empty body", ``, func(c *Client) error { _, err := c.GetProgress(context.Background(), "p"); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newRecordingServer(t, http.StatusOK, tc.body)
			require.ErrorIs(t, tc.call(New(srv.URL, nil)), ErrValidationFailed)
		})
	}
}

func TestClient_RequestShapes(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"id":"t1","title":"x","description":"","completed":false}`)
	c := New(srv.URL, staticToken("abc"))
	ctx := context.Background()

	_, err := c.CreateTask(ctx, "p 1", task.Fields{Title: "x"})
	require.NoError(t, err)
	done := true
	_, err = c.UpdateTask(ctx, "t1", task.Patch{Completed: &done})
	require.NoError(t, err)
	require.NoError(t, c.DeleteTask(ctx, "t1"))

	got := reqs.all()
	require.Len(t, got, 3)
	require.Equal(t, http.MethodPost, got[0].method)
	require.Equal(t, "/projects/p%201/tasks", got[0].path)
	require.JSONEq(t, `{"title":"x","description":"","completed":false}`, got[0].body)

	require.Equal(t, http.MethodPut, got[1].method)
	require.Equal(t, "/projects/tasks/t1", got[1].path)
	require.JSONEq(t, `{"completed":true}`, got[1].body)

	require.Equal(t, http.MethodDelete, got[2].method)
	require.Equal(t, "/projects/tasks/t1", got[2].path)
}

func TestClient_UpdateProjectSendsAllFields(t *testing.T) {
	srv, reqs := newRecordingServer(t, http.StatusOK, `{"id":"p1","name":"N","description":"","startDate":"","endDate":""}`)
	c := New(srv.URL, nil)

	_, err := c.UpdateProject(context.Background(), "p1", project.Fields{Name: "N"})
	require.NoError(t, err)
	got := reqs.all()
	require.Len(t, got, 1)
	require.Equal(t, http.MethodPut, got[0].method)
	require.Equal(t, "/projects/p1", got[0].path)
	require.JSONEq(t, `{"name":"N","description":"","startDate":"","endDate":""}`, got[0].body)
}

func TestMessage(t *testing.T) {
	require.Equal(t, "", Message(nil))
	require.Equal(t, "Rejected: name is required",
		Message(&StatusError{Status: 422, Message: "name is required", Kind: ErrValidationFailed}))
	require.Equal(t, "Server error, try again later", Message(&StatusError{Status: 500, Kind: ErrServer}))
}
