package models

import (
	"time"

	"github.com/holiman/uint256"
)

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeExpired   ChallengeStatus = "expired"
)

// Challenge is a time-boxed step race with a single winner.
type Challenge struct {
	ID               uint64          `json:"id"`
	Name             string          `json:"name"`
	TargetSteps      uint64          `json:"targetSteps"`
	CreatedAt        time.Time       `json:"createdAt"`
	Duration         time.Duration   `json:"duration"`
	EndsAt           time.Time       `json:"endsAt"`
	PrizePool        uint256.Int     `json:"prizePool"`
	ParticipantCount uint64          `json:"participantCount"`
	Winner           string          `json:"winner,omitempty"`
	IsActive         bool            `json:"isActive"`
	Status           ChallengeStatus `json:"status"`
	Reclaimed        bool            `json:"reclaimed"`
	ClosedAt         *time.Time      `json:"closedAt,omitempty"`
}

// HasWinner reports whether the challenge has been won.
func (c *Challenge) HasWinner() bool {
	return c.Winner != ""
}

// AcceptsActivity reports whether joins and progress are allowed at now.
func (c *Challenge) AcceptsActivity(now time.Time) bool {
	return c.IsActive && now.Before(c.EndsAt)
}

// Lapsed reports whether the challenge ran past its end without a winner.
// A lapsed challenge that is still marked active is waiting for the sweeper.
func (c *Challenge) Lapsed(now time.Time) bool {
	return !c.HasWinner() && !now.Before(c.EndsAt)
}

// Participant is one account's membership and progress in a challenge.
type Participant struct {
	ChallengeID uint64     `json:"challengeId"`
	Account     string     `json:"account"`
	JoinedAt    time.Time  `json:"joinedAt"`
	Steps       uint64     `json:"steps"`
	ReportedAt  *time.Time `json:"reportedAt,omitempty"`
}

// ChallengeDetails is a challenge together with its participants.
type ChallengeDetails struct {
	Challenge    Challenge     `json:"challenge"`
	Participants []Participant `json:"participants"`
}
