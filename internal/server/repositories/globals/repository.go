package globals

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type Repository interface {
	// Get returns the single global row. With forUpdate the row stays locked
	// until the surrounding transaction ends.
	Get(ctx context.Context, forUpdate bool) (*models.GlobalState, error)
	Put(ctx context.Context, g *models.GlobalState) error
}
