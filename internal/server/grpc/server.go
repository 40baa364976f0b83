// Package grpc is the gRPC surface of the server. Messages are the plain
// structs of package api carried by its JSON codec; the auth gate runs in a
// unary interceptor.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// UserService is the account side of the API.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Logout(ctx context.Context, p *auth.Principal) error
	Profile(ctx context.Context, p *auth.Principal) (*models.User, error)
	ListUsers(ctx context.Context, p *auth.Principal) ([]models.MemberProjection, error)
}

// ProjectService is the project side of the API.
type ProjectService interface {
	CreateProject(ctx context.Context, name, ownerID string) (*models.Project, error)
	ListProjectsFor(ctx context.Context, userID string, page models.Page) ([]*models.Project, error)
	AddMembers(ctx context.Context, projectID, requesterID string, newUserIDs []string) (*models.Project, error)
	GetProject(ctx context.Context, projectID, requesterID string) (*models.ProjectDetails, error)
}

type GRPCServer struct {
	address  string
	users    UserService
	projects ProjectService
	gate     *auth.Gate
	health   *health.Server
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ps ProjectService, gate *auth.Gate) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		projects: ps,
		gate:     gate,
		health:   health.NewServer(),
	}
}

// newServer builds the grpc.Server with the service, the interceptor and
// the standard health service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authInterceptor))
	srv.RegisterService(&serviceDesc, s)

	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, s.health)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
