package projects

import (
	"context"

	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

// Repository persists projects and their member sets. Nothing outside the
// project service writes through it.
type Repository interface {
	Create(ctx context.Context, name string) (*models.Project, error)
	AddMembers(ctx context.Context, projectID string, userIDs []string) error
	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	GetForMember(ctx context.Context, projectID, userID string) (*models.Project, error)
	ListForMember(ctx context.Context, userID string, page models.Page) ([]*models.Project, error)
}
