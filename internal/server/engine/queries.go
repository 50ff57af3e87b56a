package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/ledger"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/dmitrijs2005/fitmint/internal/timex"
	"github.com/holiman/uint256"
)

const (
	DefaultEventPage = 100
	MaxEventPage     = 1000
)

// viewState is the read-only counterpart of opState.
type viewState struct {
	tx  ledger.Tx
	g   *models.GlobalState
	now time.Time
}

// view runs fn against a snapshot. Reads do not take the engine mutex.
func (e *Engine) view(ctx context.Context, fn func(ctx context.Context, v *viewState) error) error {
	return e.store.View(ctx, func(ctx context.Context, tx ledger.Tx) error {
		g, err := tx.Globals(ctx)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotBootstrapped
			}
			return fmt.Errorf("load globals: %w", err)
		}
		return fn(ctx, &viewState{tx: tx, g: g, now: timex.Max(e.nowFn().UTC(), g.LastTimestamp)})
	})
}

// GetUserProfile returns the profile of account or common.ErrorNotFound.
func (e *Engine) GetUserProfile(ctx context.Context, account string) (*models.UserProfile, error) {
	var p *models.UserProfile
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		var err error
		p, err = v.tx.Profile(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetChallengeDetails returns a challenge with its participants.
func (e *Engine) GetChallengeDetails(ctx context.Context, id uint64) (*models.ChallengeDetails, error) {
	var d models.ChallengeDetails
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		c, err := v.tx.Challenge(ctx, id)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return common.ErrChallengeNotFound
		case err != nil:
			return fmt.Errorf("load challenge: %w", err)
		}
		parts, err := v.tx.Participants(ctx, id)
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}
		d = models.ChallengeDetails{Challenge: *c, Participants: parts}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetGlobalState returns a copy of the global counters.
func (e *Engine) GetGlobalState(ctx context.Context) (*models.GlobalState, error) {
	var g *models.GlobalState
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		g = v.g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetBalance returns the credited balance of account. Unknown accounts
// have a zero balance.
func (e *Engine) GetBalance(ctx context.Context, account string) (*uint256.Int, error) {
	var bal *uint256.Int
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		var err error
		bal, err = v.tx.Balance(ctx, account)
		if err != nil {
			return fmt.Errorf("load balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bal, nil
}

// ListEvents pages through the audit log in sequence order.
func (e *Engine) ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error) {
	switch {
	case limit <= 0:
		limit = DefaultEventPage
	case limit > MaxEventPage:
		limit = MaxEventPage
	}

	var events []models.Event
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		var err error
		events, err = v.tx.Events(ctx, afterSeq, limit)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
