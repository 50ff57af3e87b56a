package models

import (
	"time"

	"github.com/holiman/uint256"
)

// GlobalState holds the ledger-wide counters. There is exactly one per ledger.
type GlobalState struct {
	TotalUsers              uint64      `json:"totalUsers"`
	TotalRewardsDistributed uint256.Int `json:"totalRewardsDistributed"`
	NextChallengeID         uint64      `json:"nextChallengeId"`
	DailyRewardPool         uint256.Int `json:"dailyRewardPool"`
	Paused                  bool        `json:"paused"`
	TreasuryBalance         uint256.Int `json:"treasuryBalance"`
	ReservedPrizes          uint256.Int `json:"reservedPrizes"`
	NextEventSeq            uint64      `json:"nextEventSeq"`
	LastTimestamp           time.Time   `json:"lastTimestamp"`
}

// Genesis seeds a fresh ledger.
type Genesis struct {
	Treasury  uint256.Int
	DailyPool uint256.Int
	Paused    bool
}

// NewGlobalState returns the state of a ledger created at now.
func NewGlobalState(g Genesis, now time.Time) *GlobalState {
	return &GlobalState{
		DailyRewardPool: g.DailyPool,
		TreasuryBalance: g.Treasury,
		Paused:          g.Paused,
		NextEventSeq:    1,
		LastTimestamp:   now.UTC(),
	}
}

// Balance is the amount credited to an account by payouts.
type Balance struct {
	Account string      `json:"account"`
	Amount  uint256.Int `json:"amount"`
}
