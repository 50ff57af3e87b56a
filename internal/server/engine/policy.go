package engine

import (
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/holiman/uint256"
)

const bpsDenominator = 10_000

// ExpiryPolicy decides what happens to the prize reservation of a challenge
// that ends without a winner.
type ExpiryPolicy string

const (
	// ExpiryRetain keeps the prize reserved until the owner reclaims it.
	ExpiryRetain ExpiryPolicy = "retain"
	// ExpiryRelease returns the reservation as soon as the challenge expires.
	ExpiryRelease ExpiryPolicy = "release"
)

// Policy is the reward and eligibility configuration of an Engine.
type Policy struct {
	StepGoal           uint64
	ExerciseGoal       uint64
	MaxDailySteps      uint64
	MaxExerciseMinutes uint64
	Cooldown           time.Duration
	StreakWindow       time.Duration
	StreakBonusBps     uint64
	MaxStreakBonusDays uint64

	RequireUniqueIdentity bool
	Expiry                ExpiryPolicy
}

// DefaultPolicy returns the production reward rules.
func DefaultPolicy() Policy {
	return Policy{
		StepGoal:              10_000,
		ExerciseGoal:          30,
		MaxDailySteps:         150_000,
		MaxExerciseMinutes:    1440,
		Cooldown:              24 * time.Hour,
		StreakWindow:          48 * time.Hour,
		StreakBonusBps:        1000,
		MaxStreakBonusDays:    7,
		RequireUniqueIdentity: true,
		Expiry:                ExpiryRetain,
	}
}

// Report is one day of activity submitted with a claim.
type Report struct {
	Steps           uint64
	ExerciseMinutes uint64
	Calories        uint64
	// Attestation is handed to the ReportVerifier untouched.
	Attestation []byte
}

// validateReport rejects implausible data first, then data that meets
// neither goal.
func (p Policy) validateReport(r Report) error {
	if r.Steps == 0 && r.ExerciseMinutes == 0 && r.Calories == 0 {
		return common.ErrInvalidHealthData
	}
	if r.Steps > p.MaxDailySteps || r.ExerciseMinutes > p.MaxExerciseMinutes {
		return common.ErrInvalidHealthData
	}
	if r.Steps < p.StepGoal && r.ExerciseMinutes < p.ExerciseGoal {
		return common.ErrGoalsNotMet
	}
	return nil
}

// nextStreak returns the streak after a claim at now.
func (p Policy) nextStreak(last *time.Time, streak uint64, now time.Time) uint64 {
	if last == nil {
		return 1
	}
	if now.Sub(*last) <= p.StreakWindow {
		return streak + 1
	}
	return 1
}

// Reward computes base + base*min(streak-1, cap)*bps/10000. The result never
// decreases as the streak grows.
func (p Policy) Reward(base *uint256.Int, streak uint64) (*uint256.Int, error) {
	days := uint64(0)
	if streak > 1 {
		days = streak - 1
	}
	if days > p.MaxStreakBonusDays {
		days = p.MaxStreakBonusDays
	}

	amount := new(uint256.Int).Set(base)
	if days == 0 || p.StreakBonusBps == 0 || base.IsZero() {
		return amount, nil
	}

	mult, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(days), uint256.NewInt(p.StreakBonusBps))
	if overflow {
		return nil, common.ErrInvalidAmount
	}
	bonus, overflow := new(uint256.Int).MulDivOverflow(base, mult, uint256.NewInt(bpsDenominator))
	if overflow {
		return nil, common.ErrInvalidAmount
	}
	if _, overflow := amount.AddOverflow(amount, bonus); overflow {
		return nil, common.ErrInvalidAmount
	}
	return amount, nil
}
