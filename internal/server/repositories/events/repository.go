package events

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, e *models.Event) error
	// List returns up to limit events with seq > afterSeq in seq order.
	List(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error)
}
