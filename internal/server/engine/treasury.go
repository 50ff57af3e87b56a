package engine

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
)

// owned runs an owner-only operation. The ownership check happens before
// the transaction, so an unauthorized caller never touches the ledger.
func (e *Engine) owned(ctx context.Context, op, caller string, fn func(ctx context.Context, s *opState) error) (*models.Event, error) {
	if !e.isOwner(caller) {
		e.recorder.Operation(op, common.ErrUnauthorized, 0)
		return nil, common.ErrUnauthorized
	}
	events, err := e.apply(ctx, op, fn)
	if err != nil {
		return nil, err
	}
	return lastEvent(events), nil
}

// UpdateDailyPool sets the base daily reward. Zero is allowed and makes
// every claim pay nothing.
func (e *Engine) UpdateDailyPool(ctx context.Context, caller string, amount uint256.Int) (*models.Event, error) {
	return e.owned(ctx, "update_daily_pool", caller, func(ctx context.Context, s *opState) error {
		previous := s.g.DailyRewardPool
		s.g.DailyRewardPool = amount
		s.emit(models.EventDailyPoolUpdated, caller, nil, &amount, map[string]string{
			"previous": previous.Dec(),
		})
		return nil
	})
}

// EmergencyPause stops claims and joins.
func (e *Engine) EmergencyPause(ctx context.Context, caller string) (*models.Event, error) {
	return e.owned(ctx, "pause", caller, func(ctx context.Context, s *opState) error {
		s.g.Paused = true
		s.emit(models.EventPaused, caller, nil, nil, nil)
		return nil
	})
}

// Unpause resumes claims and joins.
func (e *Engine) Unpause(ctx context.Context, caller string) (*models.Event, error) {
	return e.owned(ctx, "unpause", caller, func(ctx context.Context, s *opState) error {
		s.g.Paused = false
		s.emit(models.EventUnpaused, caller, nil, nil, nil)
		return nil
	})
}

// FundTreasury adds amount to the treasury.
func (e *Engine) FundTreasury(ctx context.Context, caller string, amount uint256.Int) (*models.Event, error) {
	return e.owned(ctx, "fund_treasury", caller, func(ctx context.Context, s *opState) error {
		if amount.IsZero() {
			return common.ErrInvalidAmount
		}
		if _, overflow := s.g.TreasuryBalance.AddOverflow(&s.g.TreasuryBalance, &amount); overflow {
			return common.ErrInvalidAmount
		}
		s.emit(models.EventTreasuryFunded, caller, nil, &amount, map[string]string{
			"treasury": s.g.TreasuryBalance.Dec(),
		})
		return nil
	})
}

// EmergencyWithdraw moves amount from the treasury to the owner balance.
func (e *Engine) EmergencyWithdraw(ctx context.Context, caller string, amount uint256.Int) (*models.Event, error) {
	return e.owned(ctx, "emergency_withdraw", caller, func(ctx context.Context, s *opState) error {
		if err := s.debitTreasury(&amount); err != nil {
			return err
		}
		if err := s.credit(ctx, caller, &amount); err != nil {
			return err
		}
		s.emit(models.EventEmergencyWithdrawal, caller, nil, &amount, map[string]string{
			"treasury": s.g.TreasuryBalance.Dec(),
		})
		return nil
	})
}
