package accounts

import (
	"context"

	"github.com/dmitrijs2005/credvault/internal/server/models"
)

// Repository persists accounts. Lookups that find nothing return
// common.ErrorNotFound; a duplicate normalized name on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByNormalizedName(ctx context.Context, normalizedName string) (*models.Account, error)
	GetByNormalizedNameForUpdate(ctx context.Context, normalizedName string) (*models.Account, error)
	UpdateCredentials(ctx context.Context, id, passwordHash, apiKey string) error
	ReplacePasswordHash(ctx context.Context, id, oldHash, newHash string) error
	UpdateAPIKey(ctx context.Context, id, apiKey string) error
}
