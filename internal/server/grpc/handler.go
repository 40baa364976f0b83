package grpc

import (
	"context"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.SessionResponse, error) {
	session, err := s.users.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRegister, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", session.User.ID)
	return toSession(session), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.SessionResponse, error) {
	session, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodLogin, err)
	}
	return toSession(session), nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.MessageResponse, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	if err := s.users.Logout(ctx, p); err != nil {
		return nil, s.toStatus(ctx, api.MethodLogout, err)
	}
	return &api.MessageResponse{Message: "logged out successfully"}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *api.Empty) (*api.User, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	user, err := s.users.Profile(ctx, p)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodProfile, err)
	}
	return toUser(user), nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *api.Empty) (*api.ListUsersResponse, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	users, err := s.users.ListUsers(ctx, p)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListUsers, err)
	}
	return &api.ListUsersResponse{Users: toMembers(users)}, nil
}

func (s *GRPCServer) CreateProject(ctx context.Context, req *api.CreateProjectRequest) (*api.Project, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	project, err := s.projects.CreateProject(ctx, req.Name, p.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateProject, err)
	}

	s.logger.Info(ctx, "Project created", "project_id", project.ID, "owner", p.UserID)
	return toProject(project), nil
}

func (s *GRPCServer) ListProjects(ctx context.Context, req *api.ListProjectsRequest) (*api.ListProjectsResponse, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	page := models.Page{Limit: req.Limit, Offset: req.Offset}.Normalize()
	projects, err := s.projects.ListProjectsFor(ctx, p.UserID, page)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListProjects, err)
	}
	return &api.ListProjectsResponse{Projects: toProjects(projects)}, nil
}

func (s *GRPCServer) AddMembers(ctx context.Context, req *api.AddMembersRequest) (*api.Project, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	project, err := s.projects.AddMembers(ctx, req.ProjectID, p.UserID, req.Users)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodAddMembers, err)
	}
	return toProject(project), nil
}

func (s *GRPCServer) GetProject(ctx context.Context, req *api.GetProjectRequest) (*api.ProjectDetails, error) {
	p, _ := auth.PrincipalFromContext(ctx)

	project, err := s.projects.GetProject(ctx, req.ProjectID, p.UserID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetProject, err)
	}
	return toProjectDetails(project), nil
}
