package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/projects"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/revocations"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/users"
	"github.com/google/uuid"
)

// fakeUsers is an in-memory users.Repository.
type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	err   error
	calls int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*models.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, common.ErrEmailTaken
		}
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			cp := *u
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (f *fakeUsers) ListExcept(_ context.Context, id string) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*models.User, 0)
	for _, u := range f.byID {
		if u.ID != id {
			cp := *u
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

type fakeProject struct {
	project models.Project
	members map[string]struct{}
}

// fakeProjects is an in-memory projects.Repository whose AddMembers is an
// atomic union, like the SQL statement it stands in for.
type fakeProjects struct {
	mu       sync.Mutex
	byID     map[string]*fakeProject
	err      error
	addCalls int
}

func newFakeProjects() *fakeProjects { return &fakeProjects{byID: map[string]*fakeProject{}} }

func (f *fakeProjects) Create(_ context.Context, name string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.byID {
		if p.project.Name == name {
			return nil, common.ErrDuplicateName
		}
	}
	p := &fakeProject{
		project: models.Project{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()},
		members: map[string]struct{}{},
	}
	f.byID[p.project.ID] = p
	out := p.project
	return &out, nil
}

func (f *fakeProjects) AddMembers(_ context.Context, projectID string, userIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.err != nil {
		return f.err
	}
	p, ok := f.byID[projectID]
	if !ok {
		return common.ErrorNotFound
	}
	for _, id := range userIDs {
		if _, dup := p.members[id]; !dup {
			p.members[id] = struct{}{}
			p.project.Members = append(p.project.Members, id)
		}
	}
	return nil
}

func (f *fakeProjects) IsMember(_ context.Context, projectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	p, ok := f.byID[projectID]
	if !ok {
		return false, nil
	}
	_, member := p.members[userID]
	return member, nil
}

func (f *fakeProjects) GetForMember(_ context.Context, projectID, userID string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[projectID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if _, member := p.members[userID]; !member {
		return nil, common.ErrorNotFound
	}
	out := p.project
	out.Members = append([]string(nil), p.project.Members...)
	return &out, nil
}

func (f *fakeProjects) ListForMember(_ context.Context, userID string, _ models.Page) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*models.Project, 0)
	for _, p := range f.byID {
		if _, member := p.members[userID]; member {
			out := p.project
			out.Members = append([]string(nil), p.project.Members...)
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *fakeProjects) members(projectID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]string, 0)
	for id := range f.byID[projectID].members {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

type fakeRepoManager struct {
	u *fakeUsers
	p *fakeProjects
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsers(), p: newFakeProjects()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *fakeRepoManager) Projects(dbx.DBTX) projects.Repository        { return m.p }
func (m *fakeRepoManager) Revocations(dbx.DBTX) revocations.Repository  { return nil }
