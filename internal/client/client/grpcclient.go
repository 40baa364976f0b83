package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn

	mu    sync.RWMutex
	token string
}

var _ Client = (*GRPCClient)(nil)

func withToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) tokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := c.currentToken(); token != "" {
		ctx = withToken(ctx, token)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	// a revoked or expired session is gone for good; forget it
	if status.Code(err) == codes.Unauthenticated && method != api.MethodLogin {
		c.setToken("")
	}
	return err
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.tokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *GRPCClient) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *GRPCClient) LoggedIn() bool {
	return c.currentToken() != ""
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) invoke(ctx context.Context, method string, req, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return mapError(c.conn.Invoke(ctx, method, req, resp))
}

// Ping asks the standard health service whether ProjectHub is serving.
func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Register(ctx context.Context, email, password, name string) (*api.User, error) {
	var resp api.SessionResponse
	if err := c.invoke(ctx, api.MethodRegister, &api.RegisterRequest{Email: email, Password: password, Name: name}, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return resp.User, nil
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) (*api.User, error) {
	var resp api.SessionResponse
	if err := c.invoke(ctx, api.MethodLogin, &api.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return resp.User, nil
}

// Logout revokes the session on the server. The local token is dropped even
// when the server already considers it invalid.
func (c *GRPCClient) Logout(ctx context.Context) error {
	var resp api.MessageResponse
	err := c.invoke(ctx, api.MethodLogout, &api.Empty{}, &resp)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	c.setToken("")
	return nil
}

func (c *GRPCClient) Profile(ctx context.Context) (*api.User, error) {
	var resp api.User
	if err := c.invoke(ctx, api.MethodProfile, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) ListUsers(ctx context.Context) ([]api.Member, error) {
	var resp api.ListUsersResponse
	if err := c.invoke(ctx, api.MethodListUsers, &api.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *GRPCClient) CreateProject(ctx context.Context, name string) (*api.Project, error) {
	var resp api.Project
	if err := c.invoke(ctx, api.MethodCreateProject, &api.CreateProjectRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) ListProjects(ctx context.Context, limit, offset int) ([]*api.Project, error) {
	var resp api.ListProjectsResponse
	if err := c.invoke(ctx, api.MethodListProjects, &api.ListProjectsRequest{Limit: limit, Offset: offset}, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *GRPCClient) AddMembers(ctx context.Context, projectID string, userIDs []string) (*api.Project, error) {
	var resp api.Project
	if err := c.invoke(ctx, api.MethodAddMembers, &api.AddMembersRequest{ProjectID: projectID, Users: userIDs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) GetProject(ctx context.Context, projectID string) (*api.ProjectDetails, error) {
	var resp api.ProjectDetails
	if err := c.invoke(ctx, api.MethodGetProject, &api.GetProjectRequest{ProjectID: projectID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// mapError turns a gRPC status into a sentinel, keeping the server's message
// where it is meant for the user.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument, codes.AlreadyExists, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
