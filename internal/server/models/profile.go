package models

import (
	"time"

	"github.com/holiman/uint256"
)

// UserProfile is the per-account reward state.
type UserProfile struct {
	Account       string      `json:"account"`
	IsVerified    bool        `json:"isVerified"`
	IdentityToken []byte      `json:"identityToken,omitempty"`
	VerifiedAt    time.Time   `json:"verifiedAt"`
	LastClaimTime *time.Time  `json:"lastClaimTime,omitempty"`
	StreakDays    uint64      `json:"streakDays"`
	TotalClaimed  uint256.Int `json:"totalClaimed"`
}

// HasClaimed reports whether the account has ever claimed.
func (p *UserProfile) HasClaimed() bool {
	return p.LastClaimTime != nil
}
