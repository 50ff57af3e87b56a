package workers

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

// Sweeper closes lapsed challenges.
type Sweeper interface {
	SweepExpired(ctx context.Context) ([]models.Event, error)
}

// Exporter ships new events somewhere durable.
type Exporter interface {
	Run(ctx context.Context) (int, error)
}

// ExpirySweep returns a job that expires lapsed challenges.
func ExpirySweep(s Sweeper, logger logging.Logger) Job {
	return func(ctx context.Context) error {
		events, err := s.SweepExpired(ctx)
		if err != nil {
			return err
		}
		for _, e := range events {
			logger.Info(ctx, "challenge expired", "challenge_id", *e.ChallengeID, "seq", e.Seq)
		}
		return nil
	}
}

// Archive returns a job that exports new events.
func Archive(x Exporter, logger logging.Logger) Job {
	return func(ctx context.Context) error {
		n, err := x.Run(ctx)
		if n > 0 {
			logger.Info(ctx, "events archived", "count", n)
		}
		return err
	}
}
