package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/client/config"
)

type fakeClient struct {
	loggedIn bool
	err      error
	pingErr  error
	closed   bool

	gotEmail, gotPassword, gotName string
	gotProjectID                   string
	gotIDs                         []string
	gotLimit, gotOffset            int

	user     *api.User
	users    []api.Member
	project  *api.Project
	projects []*api.Project
	details  *api.ProjectDetails
}

func (f *fakeClient) Close() error                               { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error                 { return f.pingErr }
func (f *fakeClient) LoggedIn() bool                             { return f.loggedIn }
func (f *fakeClient) Profile(context.Context) (*api.User, error) { return f.user, f.err }

func (f *fakeClient) Register(_ context.Context, email, password, name string) (*api.User, error) {
	f.gotEmail, f.gotPassword, f.gotName = email, password, name
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*api.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = true
	return f.user, nil
}

func (f *fakeClient) Logout(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.loggedIn = false
	return nil
}

func (f *fakeClient) ListUsers(context.Context) ([]api.Member, error) {
	return f.users, f.err
}

func (f *fakeClient) CreateProject(_ context.Context, name string) (*api.Project, error) {
	f.gotName = name
	return f.project, f.err
}

func (f *fakeClient) ListProjects(_ context.Context, limit, offset int) ([]*api.Project, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.projects, f.err
}

func (f *fakeClient) AddMembers(_ context.Context, projectID string, ids []string) (*api.Project, error) {
	f.gotProjectID, f.gotIDs = projectID, ids
	return f.project, f.err
}

func (f *fakeClient) GetProject(_ context.Context, projectID string) (*api.ProjectDetails, error) {
	f.gotProjectID = projectID
	return f.details, f.err
}

func newTestApp(f *fakeClient, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{config: cfg, client: f, reader: bufio.NewReader(strings.NewReader(input)), out: out}, out
}

func stubInputs(t *testing.T, texts []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
}
