package client

import (
	"context"

	"github.com/dmitrijs2005/projecthub/internal/api"
)

// Client is the API surface the CLI depends on.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	LoggedIn() bool
	Register(ctx context.Context, email, password, name string) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*api.User, error)
	ListUsers(ctx context.Context) ([]api.Member, error)
	CreateProject(ctx context.Context, name string) (*api.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*api.Project, error)
	AddMembers(ctx context.Context, projectID string, userIDs []string) (*api.Project, error)
	GetProject(ctx context.Context, projectID string) (*api.ProjectDetails, error)
}
