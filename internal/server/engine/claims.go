package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
)

// ClaimResult is the outcome of a successful daily claim.
type ClaimResult struct {
	Amount     uint256.Int
	StreakDays uint64
	Event      models.Event
}

// ClaimDailyReward pays the daily reward to account for the given report.
// Checks run in a fixed order and the first failure wins: attestation,
// verification, pause, data plausibility, goals, cooldown, treasury funds.
func (e *Engine) ClaimDailyReward(ctx context.Context, account string, r Report) (*ClaimResult, error) {
	if e.verifier != nil {
		if err := e.verifier.VerifyReport(ctx, account, r); err != nil {
			e.recorder.Operation("claim", common.ErrInvalidHealthData, 0)
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidHealthData, err)
		}
	}

	var result ClaimResult
	events, err := e.apply(ctx, "claim", func(ctx context.Context, s *opState) error {
		p, err := s.tx.Profile(ctx, account)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return common.ErrNotVerified
		case err != nil:
			return fmt.Errorf("load profile: %w", err)
		}
		if !p.IsVerified {
			return common.ErrNotVerified
		}
		if s.g.Paused {
			return common.ErrPaused
		}
		if err := e.policy.validateReport(r); err != nil {
			return err
		}
		if p.LastClaimTime != nil && s.now.Sub(*p.LastClaimTime) < e.policy.Cooldown {
			return common.ErrCooldownNotMet
		}

		streak := e.policy.nextStreak(p.LastClaimTime, p.StreakDays, s.now)
		amount, err := e.policy.Reward(&s.g.DailyRewardPool, streak)
		if err != nil {
			return err
		}
		if err := s.debitTreasury(amount); err != nil {
			return err
		}
		if err := s.credit(ctx, account, amount); err != nil {
			return err
		}

		now := s.now
		p.LastClaimTime = &now
		p.StreakDays = streak
		p.TotalClaimed.Add(&p.TotalClaimed, amount)
		if err := s.tx.PutProfile(ctx, p); err != nil {
			return fmt.Errorf("store profile: %w", err)
		}
		s.g.TotalRewardsDistributed.Add(&s.g.TotalRewardsDistributed, amount)

		s.emit(models.EventRewardClaimed, account, nil, amount, map[string]string{
			"steps":           strconv.FormatUint(r.Steps, 10),
			"exerciseMinutes": strconv.FormatUint(r.ExerciseMinutes, 10),
			"calories":        strconv.FormatUint(r.Calories, 10),
			"streakDays":      strconv.FormatUint(streak, 10),
		})

		result = ClaimResult{Amount: *amount, StreakDays: streak}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Event = *lastEvent(events)
	e.recorder.Payout("daily", &result.Amount)
	return &result, nil
}

// ClaimStatus describes when an account may claim next.
type ClaimStatus struct {
	Verified    bool      `json:"verified"`
	CanClaim    bool      `json:"canClaim"`
	NextClaimAt time.Time `json:"nextClaimAt"`
	StreakDays  uint64    `json:"streakDays"`
	// StreakExpiresAt is the last instant a claim still extends the streak.
	StreakExpiresAt *time.Time `json:"streakExpiresAt,omitempty"`
}

// ClaimStatus reports claim eligibility for account at the current time.
// It ignores the report itself, so goals are not evaluated.
func (e *Engine) ClaimStatus(ctx context.Context, account string) (*ClaimStatus, error) {
	var st ClaimStatus
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		p, err := v.tx.Profile(ctx, account)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil
		case err != nil:
			return fmt.Errorf("load profile: %w", err)
		}

		st.Verified = p.IsVerified
		st.NextClaimAt = v.now
		if p.LastClaimTime != nil {
			st.StreakDays = p.StreakDays
			if next := p.LastClaimTime.Add(e.policy.Cooldown); next.After(v.now) {
				st.NextClaimAt = next
			}
			expires := p.LastClaimTime.Add(e.policy.StreakWindow)
			if !expires.Before(v.now) {
				st.StreakExpiresAt = &expires
			} else {
				st.StreakDays = 0
			}
		}
		st.CanClaim = p.IsVerified && !v.g.Paused && !st.NextClaimAt.After(v.now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}
