package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/taskpane/internal/repository"
)

// Repositories groups the persistence the server reads and writes.
type Repositories struct {
	Users    repository.UserRepository
	Tokens   repository.TokenRepository
	Projects repository.ProjectRepository
	Tasks    repository.TaskRepository
}

// Server wires HTTP handlers.
type Server struct {
	repos  Repositories
	logger *slog.Logger
}

// NewServer creates the REST router. Everything except login and health
// requires a bearer token issued by POST /auth/login.
func NewServer(repos Repositories, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{repos: repos, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(srv.logRequests)

	r.Get("/health", srv.handleHealth)
	r.Post("/auth/login", srv.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(srv))

		r.Get("/projects", srv.handleListProjects)
		r.Post("/projects", srv.handleCreateProject)
		r.Put("/projects/tasks/{taskID}", srv.handleUpdateTask)
		r.Delete("/projects/tasks/{taskID}", srv.handleDeleteTask)
		r.Put("/projects/{projectID}", srv.handleUpdateProject)
		r.Delete("/projects/{projectID}", srv.handleDeleteProject)
		r.Get("/projects/{projectID}/tasks", srv.handleListTasks)
		r.Post("/projects/{projectID}/tasks", srv.handleCreateTask)
		r.Get("/projects/{projectID}/progress", srv.handleProgress)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// writeRepoError maps repository sentinels onto HTTP statuses.
func (s *Server) writeRepoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, repository.ErrForeignKeyViolation), errors.Is(err, repository.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func currentUser(r *http.Request) string {
	userID, _ := UserFromContext(r.Context())
	return userID
}
