package challenges

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, id uint64) (*models.Challenge, error)
	Put(ctx context.Context, c *models.Challenge) error
	// ListActive returns the challenges still marked active, ordered by id.
	ListActive(ctx context.Context) ([]models.Challenge, error)
}
