package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/dbx"
	"github.com/dmitrijs2005/projecthub/internal/server/config"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
	"github.com/dmitrijs2005/projecthub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ProjectService owns projects and is the only writer of their member sets.
//
// Every read or write of a project is preceded by a membership check against
// the requester. A non-member gets common.ErrorNotFound, the same answer as
// for a project that does not exist.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	timeout     time.Duration
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ProjectService {
	return &ProjectService{db: db, repomanager: m, timeout: cfg.StoreTimeout}
}

// CreateProject stores a new project whose member set is {ownerID}. Name
// uniqueness is decided by the database, not by a prior lookup.
func (s *ProjectService) CreateProject(ctx context.Context, name, ownerID string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", common.ErrInvalidInput)
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	var project *models.Project
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Projects(tx)

		p, err := repo.Create(ctx, name)
		if err != nil {
			return err
		}
		if err := repo.AddMembers(ctx, p.ID, []string{ownerID}); err != nil {
			return err
		}

		p.Members = []string{ownerID}
		project = p
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return project, nil
}

// ListProjectsFor returns the projects userID is a member of.
func (s *ProjectService) ListProjectsFor(ctx context.Context, userID string, page models.Page) ([]*models.Project, error) {
	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	projects, err := s.repomanager.Projects(s.db).ListForMember(ctx, userID, page)
	if err != nil {
		return nil, storeErr(err)
	}
	return projects, nil
}

// AddMembers unions newUserIDs into the project's member set and returns the
// updated project. Input is fully validated before the first store call.
// The union itself is a single engine-side statement, so concurrent calls
// against the same project never lose an update.
func (s *ProjectService) AddMembers(ctx context.Context, projectID, requesterID string, newUserIDs []string) (*models.Project, error) {
	projectID, err := parseID(projectID, "project id")
	if err != nil {
		return nil, err
	}
	ids, err := parseMemberIDs(newUserIDs)
	if err != nil {
		return nil, err
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	projects := s.repomanager.Projects(s.db)

	member, err := projects.IsMember(ctx, projectID, requesterID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !member {
		return nil, common.ErrorNotFound
	}

	found, err := s.repomanager.Users(s.db).FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(found) != len(ids) {
		return nil, common.ErrInvalidUser
	}

	if err := projects.AddMembers(ctx, projectID, ids); err != nil {
		return nil, storeErr(err)
	}

	project, err := projects.GetForMember(ctx, projectID, requesterID)
	if err != nil {
		return nil, storeErr(err)
	}
	return project, nil
}

// GetProject returns the project with its members resolved to projections.
func (s *ProjectService) GetProject(ctx context.Context, projectID, requesterID string) (*models.ProjectDetails, error) {
	projectID, err := parseID(projectID, "project id")
	if err != nil {
		return nil, err
	}

	ctx, cancel := bound(ctx, s.timeout)
	defer cancel()

	project, err := s.repomanager.Projects(s.db).GetForMember(ctx, projectID, requesterID)
	if err != nil {
		return nil, storeErr(err)
	}

	users, err := s.repomanager.Users(s.db).FindByIDs(ctx, project.Members)
	if err != nil {
		return nil, storeErr(err)
	}

	members := make([]models.MemberProjection, 0, len(users))
	for _, u := range users {
		members = append(members, u.Projection())
	}

	return &models.ProjectDetails{
		ID:        project.ID,
		Name:      project.Name,
		Members:   members,
		CreatedAt: project.CreatedAt,
	}, nil
}

func parseID(id, what string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%w: malformed %s", common.ErrInvalidInput, what)
	}
	return u.String(), nil
}

// parseMemberIDs canonicalizes ids and drops duplicates, keeping first
// occurrence order.
func parseMemberIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one user is required", common.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := parseID(raw, "user id")
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
