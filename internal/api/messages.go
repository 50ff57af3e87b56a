package api

import (
	"time"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

// Amounts cross the wire as decimal strings so that 256-bit values survive
// any JSON implementation.

type Empty struct{}

type VerifyRequest struct {
	IdentityToken []byte `json:"identity_token"`
}

type EventResponse struct {
	Event *models.Event `json:"event"`
}

type ClaimRequest struct {
	Steps           uint64 `json:"steps"`
	ExerciseMinutes uint64 `json:"exercise_minutes"`
	Calories        uint64 `json:"calories"`
	Attestation     []byte `json:"attestation,omitempty"`
}

type ClaimResponse struct {
	Amount     string        `json:"amount"`
	StreakDays uint64        `json:"streak_days"`
	Event      *models.Event `json:"event"`
}

type CreateChallengeRequest struct {
	Name            string `json:"name"`
	TargetSteps     uint64 `json:"target_steps"`
	DurationSeconds int64  `json:"duration_seconds"`
	PrizePool       string `json:"prize_pool"`
}

type ChallengeResponse struct {
	Challenge *models.Challenge `json:"challenge"`
}

type ChallengeRequest struct {
	ChallengeID uint64 `json:"challenge_id"`
}

type ProgressRequest struct {
	ChallengeID uint64 `json:"challenge_id"`
	Steps       uint64 `json:"steps"`
}

type ProgressResponse struct {
	Completed bool          `json:"completed"`
	Event     *models.Event `json:"event"`
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

// AccountRequest names the account to look up. Empty means the caller.
type AccountRequest struct {
	Account string `json:"account,omitempty"`
}

type ClaimStatus struct {
	Verified        bool       `json:"verified"`
	CanClaim        bool       `json:"can_claim"`
	NextClaimAt     time.Time  `json:"next_claim_at"`
	StreakDays      uint64     `json:"streak_days"`
	StreakExpiresAt *time.Time `json:"streak_expires_at,omitempty"`
}

type ProfileResponse struct {
	Profile *models.UserProfile `json:"profile"`
	Claim   *ClaimStatus        `json:"claim"`
}

type ChallengeDetailsResponse struct {
	Details *models.ChallengeDetails `json:"details"`
}

type GlobalStateResponse struct {
	State *models.GlobalState `json:"state"`
}

type BalanceResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

type ListEventsRequest struct {
	AfterSeq uint64 `json:"after_seq"`
	Limit    int    `json:"limit"`
}

type ListEventsResponse struct {
	Events []models.Event `json:"events"`
}
