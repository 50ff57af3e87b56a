package participants

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, challengeID uint64, account string) (*models.Participant, error)
	Put(ctx context.Context, p *models.Participant) error
	List(ctx context.Context, challengeID uint64) ([]models.Participant, error)
}
