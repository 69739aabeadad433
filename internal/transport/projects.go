package transport

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpggio/taskpane/internal/domain/project"
)

const dateLayout = "2006-01-02"

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.repos.Projects.List(r.Context(), currentUser(r))
	if err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var fields project.Fields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fields.Name = strings.TrimSpace(fields.Name)
	if err := validateProject(fields); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	proj := project.Project{ID: uuid.NewString()}.WithFields(fields)
	if err := s.repos.Projects.Create(r.Context(), currentUser(r), &proj); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var fields project.Fields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fields.Name = strings.TrimSpace(fields.Name)
	if err := validateProject(fields); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	proj := project.Project{ID: chi.URLParam(r, "projectID")}.WithFields(fields)
	if err := s.repos.Projects.Update(r.Context(), currentUser(r), &proj); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.repos.Projects.Delete(r.Context(), currentUser(r), chi.URLParam(r, "projectID")); err != nil {
		s.writeRepoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func validateProject(f project.Fields) error {
	if f.Name == "" {
		return fmt.Errorf("name is required")
	}
	start, err := parseDate("startDate", f.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("endDate", f.EndDate)
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("endDate must not be before startDate")
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", field)
	}
	return t, nil
}
