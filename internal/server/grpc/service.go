package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"google.golang.org/grpc"
)

// ProjectHubServer is the set of RPCs registered under api.ServiceName.
type ProjectHubServer interface {
	Register(context.Context, *api.RegisterRequest) (*api.SessionResponse, error)
	Login(context.Context, *api.LoginRequest) (*api.SessionResponse, error)
	Logout(context.Context, *api.Empty) (*api.MessageResponse, error)
	Profile(context.Context, *api.Empty) (*api.User, error)
	ListUsers(context.Context, *api.Empty) (*api.ListUsersResponse, error)
	CreateProject(context.Context, *api.CreateProjectRequest) (*api.Project, error)
	ListProjects(context.Context, *api.ListProjectsRequest) (*api.ListProjectsResponse, error)
	AddMembers(context.Context, *api.AddMembersRequest) (*api.Project, error)
	GetProject(context.Context, *api.GetProjectRequest) (*api.ProjectDetails, error)
}

// unary adapts a typed handler to grpc.MethodDesc, running the chained
// interceptors the same way generated code does.
func unary[Req, Resp any](fullMethod string, call func(ProjectHubServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: fullMethod[strings.LastIndex(fullMethod, "/")+1:],
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ProjectHubServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ProjectHubServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*ProjectHubServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodRegister, ProjectHubServer.Register),
		unary(api.MethodLogin, ProjectHubServer.Login),
		unary(api.MethodLogout, ProjectHubServer.Logout),
		unary(api.MethodProfile, ProjectHubServer.Profile),
		unary(api.MethodListUsers, ProjectHubServer.ListUsers),
		unary(api.MethodCreateProject, ProjectHubServer.CreateProject),
		unary(api.MethodListProjects, ProjectHubServer.ListProjects),
		unary(api.MethodAddMembers, ProjectHubServer.AddMembers),
		unary(api.MethodGetProject, ProjectHubServer.GetProject),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "projecthub/v1/projecthub.json",
}

// publicMethods are callable without a session token.
var publicMethods = map[string]bool{
	api.MethodRegister: true,
	api.MethodLogin:    true,
}
