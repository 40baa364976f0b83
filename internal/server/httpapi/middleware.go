package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
)

// authenticate runs the auth gate over the token cookie or the
// Authorization header and stores the principal in the request context.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cookieValue string
		if c, err := r.Cookie(common.TokenCookieName); err == nil {
			cookieValue = c.Value
		}

		token := auth.ExtractToken(cookieValue, r.Header.Get(common.AuthorizationHeaderName))

		p, err := s.gate.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrTokenRevoked) {
				s.clearTokenCookie(w)
			}
			s.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	})
}

// headerTokenOnly guards state-changing GET routes: a cookie travels with
// cross-site links, an Authorization header does not. Cookie sessions must
// use POST.
func (s *HTTPServer) headerTokenOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(common.AuthorizationHeaderName) == "" {
			w.Header().Set("Allow", http.MethodPost)
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "use POST to log out with a cookie session"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.opts.CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *HTTPServer) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
