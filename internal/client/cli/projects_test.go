package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjects_ParsesPaging(t *testing.T) {
	f := &fakeClient{projects: []*api.Project{{ID: "p1", Name: "Roadmap", Users: []string{"u1", "u2"}}}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Projects(context.Background(), []string{"5", "10"}))
	assert.Equal(t, 5, f.gotLimit)
	assert.Equal(t, 10, f.gotOffset)
	assert.Contains(t, out.String(), "Roadmap")
	assert.Contains(t, out.String(), "p1")

	assert.ErrorIs(t, a.Projects(context.Background(), []string{"x"}), errUsage)
	assert.ErrorIs(t, a.Projects(context.Background(), []string{"-1"}), errUsage)
}

func TestProjects_Empty(t *testing.T) {
	a, out := newTestApp(&fakeClient{}, "")

	require.NoError(t, a.Projects(context.Background(), nil))
	assert.Contains(t, out.String(), "No projects")
}

func TestCreate(t *testing.T) {
	f := &fakeClient{project: &api.Project{ID: "p1", Name: "Q3 Roadmap", Users: []string{"u1"}}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Create(context.Background(), []string{"Q3", "Roadmap"}))
	assert.Equal(t, "Q3 Roadmap", f.gotName)
	assert.Contains(t, out.String(), "Created project Q3 Roadmap (p1)")

	assert.ErrorIs(t, a.Create(context.Background(), nil), errUsage)
}

func TestAdd_SplitsIDs(t *testing.T) {
	f := &fakeClient{project: &api.Project{ID: "p1", Name: "Roadmap", Users: []string{"u1", "u2", "u3"}}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Add(context.Background(), []string{"p1", "u2,u3", ","}))
	assert.Equal(t, "p1", f.gotProjectID)
	assert.Equal(t, []string{"u2", "u3"}, f.gotIDs)
	assert.Contains(t, out.String(), "now has 3 members")

	assert.ErrorIs(t, a.Add(context.Background(), []string{"p1"}), errUsage)
	assert.ErrorIs(t, a.Add(context.Background(), []string{"p1", ","}), errUsage)
}

func TestShow(t *testing.T) {
	f := &fakeClient{details: &api.ProjectDetails{ID: "p1", Name: "Roadmap",
		Users: []api.Member{{ID: "u1", Name: "Ann", Email: "ann@example.com"}}}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Show(context.Background(), []string{"p1"}))
	assert.Contains(t, out.String(), "Roadmap (p1)")
	assert.Contains(t, out.String(), "ann@example.com")

	assert.ErrorIs(t, a.Show(context.Background(), nil), errUsage)
}

func TestShow_NotFound(t *testing.T) {
	a, out := newTestApp(&fakeClient{err: client.ErrNotFound}, "")

	assert.ErrorIs(t, a.Show(context.Background(), []string{"p9"}), client.ErrNotFound)
	assert.Contains(t, out.String(), "error: not found")
}

func TestUsers(t *testing.T) {
	f := &fakeClient{users: []api.Member{{ID: "u2", Name: "Bob", Email: "bob@example.com"}}}
	a, out := newTestApp(f, "")

	require.NoError(t, a.Users(context.Background()))
	assert.Contains(t, out.String(), "bob@example.com")
}
