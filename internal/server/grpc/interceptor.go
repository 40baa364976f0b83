package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authInterceptor runs the auth gate for every ProjectHub method except the
// public ones. The token comes from "token" metadata or from
// "authorization: Bearer <token>".
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !isProjectHubMethod(info.FullMethod) || publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var tokenValue, authorization string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.TokenCookieName); len(values) > 0 {
			tokenValue = values[0]
		}
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			authorization = values[0]
		}
	}

	p, err := s.gate.Authenticate(ctx, auth.ExtractToken(tokenValue, authorization))
	if err != nil {
		return nil, s.toStatus(ctx, info.FullMethod, err)
	}

	return handler(auth.WithPrincipal(ctx, p), req)
}

func isProjectHubMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+api.ServiceName+"/")
}

// toStatus maps a service error to a gRPC status. Unclassified and store
// failures are logged; their text never reaches the client.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		s.logger.Debug(ctx, "request cancelled by client", "method", method)
		return status.Error(codes.Canceled, "request cancelled")
	case errors.Is(err, common.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrTokenRevoked),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, unauthenticatedMessage(err))
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrDuplicateName):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateName.Error())
	case errors.Is(err, common.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, common.ErrEmailTaken.Error())
	case errors.Is(err, common.ErrInvalidUser):
		return status.Error(codes.FailedPrecondition, common.ErrInvalidUser.Error())
	case errors.Is(err, common.ErrStoreUnavailable):
		s.logger.Error(ctx, "store unavailable", "method", method, "error", err)
		return status.Error(codes.Unavailable, "service temporarily unavailable")
	}

	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func unauthenticatedMessage(err error) string {
	for _, known := range []error{common.ErrTokenRevoked, common.ErrInvalidToken, common.ErrorUnauthorized} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return common.ErrUnauthenticated.Error()
}
