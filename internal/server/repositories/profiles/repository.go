package profiles

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, account string) (*models.UserProfile, error)
	Put(ctx context.Context, p *models.UserProfile) error
}
