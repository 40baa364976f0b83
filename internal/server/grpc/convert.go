package grpc

import (
	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/services"
)

func toUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

func toSession(s *services.Session) *api.SessionResponse {
	return &api.SessionResponse{User: toUser(s.User), Token: s.Token}
}

func toMembers(in []models.MemberProjection) []api.Member {
	out := make([]api.Member, 0, len(in))
	for _, m := range in {
		out = append(out, api.Member{ID: m.ID, Name: m.Name, Email: m.Email})
	}
	return out
}

func toProject(p *models.Project) *api.Project {
	return &api.Project{ID: p.ID, Name: p.Name, Users: p.Members, CreatedAt: p.CreatedAt}
}

func toProjects(in []*models.Project) []*api.Project {
	out := make([]*api.Project, 0, len(in))
	for _, p := range in {
		out = append(out, toProject(p))
	}
	return out
}

func toProjectDetails(p *models.ProjectDetails) *api.ProjectDetails {
	return &api.ProjectDetails{ID: p.ID, Name: p.Name, Users: toMembers(p.Members), CreatedAt: p.CreatedAt}
}
