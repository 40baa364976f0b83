package users

import (
	"context"

	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	ListExcept(ctx context.Context, id string) ([]*models.User, error)
}
