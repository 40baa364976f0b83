package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// createProjectRequest ignores any client-sent user id; the owner is always
// the authenticated principal.
type createProjectRequest struct {
	Name string `json:"name"`
}

type addMembersRequest struct {
	ProjectID string   `json:"projectId"`
	Users     []string `json:"users"`
}

func (s *HTTPServer) healthz(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", session.User.ID)
	s.setTokenCookie(w, session.Token)
	writeJSON(w, http.StatusCreated, session)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.setTokenCookie(w, session.Token)
	writeJSON(w, http.StatusOK, session)
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	if err := s.users.Logout(r.Context(), p); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.clearTokenCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out successfully"})
}

func (s *HTTPServer) profile(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	user, err := s.users.Profile(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	users, err := s.users.ListUsers(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) createProject(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	var req createProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	project, err := s.projects.CreateProject(r.Context(), req.Name, p.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Project created", "project_id", project.ID, "owner", p.UserID)
	writeJSON(w, http.StatusCreated, project)
}

func (s *HTTPServer) listProjects(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	page, err := pageFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	projects, err := s.projects.ListProjectsFor(r.Context(), p.UserID, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *HTTPServer) addMembers(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	var req addMembersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	project, err := s.projects.AddMembers(r.Context(), req.ProjectID, p.UserID, req.Users)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *HTTPServer) getProject(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())

	project, err := s.projects.GetProject(r.Context(), chi.URLParam(r, "projectId"), p.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func pageFromQuery(r *http.Request) (models.Page, error) {
	var page models.Page
	q := r.URL.Query()

	for key, dst := range map[string]*int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, fmt.Errorf("%w: %s must be a non-negative integer", common.ErrInvalidInput, key)
		}
		*dst = n
	}
	return page.Normalize(), nil
}
