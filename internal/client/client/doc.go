// Package client talks to the ProjectHub gRPC endpoint on behalf of the CLI.
//
// GRPCClient keeps the session token returned by Register/Login and attaches
// it to every later call as "authorization: Bearer <token>" through a unary
// interceptor. Status codes come back as the sentinel errors in errors.go, so
// callers match with errors.Is.
package client
