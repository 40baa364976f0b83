// Package httpapi is the HTTP surface of the server: chi routes, the cookie
// and Bearer token transport, and the error-to-status mapping.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/auth"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
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

// Options carries the transport settings that come from config.
type Options struct {
	Address        string
	CookieSecure   bool
	CookieMaxAge   time.Duration
	AllowedOrigins []string
	// Health, when set, is consulted by /healthz.
	Health func(ctx context.Context) error
}

type HTTPServer struct {
	opts     Options
	users    UserService
	projects ProjectService
	gate     *auth.Gate
	logger   logging.Logger
}

func NewHTTPServer(opts Options, l logging.Logger, us UserService, ps ProjectService, gate *auth.Gate) *HTTPServer {
	return &HTTPServer{
		opts:     opts,
		users:    us,
		projects: ps,
		gate:     gate,
		logger:   l.With("module", "http_server"),
	}
}

// Router builds the route table.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.healthz)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.With(s.headerTokenOnly).Get("/logout", s.logout)
			r.Post("/logout", s.logout)
			r.Get("/profile", s.profile)
			r.Get("/all", s.listUsers)
		})
	})

	r.Route("/projects", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/create", s.createProject)
		r.Get("/all", s.listProjects)
		r.Put("/add-user", s.addMembers)
		r.Get("/get-project/{projectId}", s.getProject)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
