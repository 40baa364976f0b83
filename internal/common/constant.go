package common

// TokenCookieName is the cookie that carries the session token for browser
// clients.
const TokenCookieName = "token"

// AuthorizationHeaderName carries "Bearer <token>" on HTTP requests and
// gRPC metadata.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "
