package models

import (
	"time"

	"github.com/holiman/uint256"
)

type EventType string

const (
	EventLedgerCreated       EventType = "LedgerCreated"
	EventUserVerified        EventType = "UserVerified"
	EventRewardClaimed       EventType = "RewardClaimed"
	EventChallengeCreated    EventType = "ChallengeCreated"
	EventChallengeJoined     EventType = "ChallengeJoined"
	EventChallengeProgress   EventType = "ChallengeProgress"
	EventChallengeCompleted  EventType = "ChallengeCompleted"
	EventChallengeExpired    EventType = "ChallengeExpired"
	EventChallengeReclaimed  EventType = "ChallengeReclaimed"
	EventDailyPoolUpdated    EventType = "DailyPoolUpdated"
	EventPaused              EventType = "Paused"
	EventUnpaused            EventType = "Unpaused"
	EventEmergencyWithdrawal EventType = "EmergencyWithdrawal"
	EventTreasuryFunded      EventType = "TreasuryFunded"
)

// Event is one entry of the append-only audit log. Seq is gapless from 1.
type Event struct {
	Seq         uint64            `json:"seq"`
	ID          string            `json:"id"`
	Type        EventType         `json:"type"`
	Account     string            `json:"account,omitempty"`
	ChallengeID *uint64           `json:"challengeId,omitempty"`
	Amount      *uint256.Int      `json:"amount,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	At          time.Time         `json:"at"`
}
