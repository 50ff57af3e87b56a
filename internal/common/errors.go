package common

import "errors"

// Business failures. Each operation reports exactly one of these; callers
// should use errors.Is to match them.
var (
	// identity
	ErrAlreadyVerified      = errors.New("already verified")
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	ErrIdentityTokenInUse   = errors.New("identity token already bound to another account")

	// claims
	ErrNotVerified       = errors.New("user not verified")
	ErrPaused            = errors.New("paused")
	ErrInvalidHealthData = errors.New("invalid health data")
	ErrGoalsNotMet       = errors.New("fitness goals not met")
	ErrCooldownNotMet    = errors.New("claim cooldown not met")

	// challenges
	ErrInvalidChallenge    = errors.New("invalid challenge")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrChallengeInactive   = errors.New("challenge not active")
	ErrAlreadyJoined       = errors.New("already joined")
	ErrNotParticipant      = errors.New("not a participant")
	ErrChallengeNotExpired = errors.New("challenge not expired or already reclaimed")

	// treasury
	ErrUnauthorized            = errors.New("caller is not the owner")
	ErrInsufficientPoolBalance = errors.New("insufficient pool balance")
	ErrInvalidAmount           = errors.New("invalid amount")
)

// businessErrors lists every business failure together with its
// machine-readable reason.
var businessErrors = []struct {
	err    error
	reason string
}{
	{ErrAlreadyVerified, "ALREADY_VERIFIED"},
	{ErrInvalidIdentityToken, "INVALID_IDENTITY_TOKEN"},
	{ErrIdentityTokenInUse, "IDENTITY_TOKEN_IN_USE"},
	{ErrNotVerified, "NOT_VERIFIED"},
	{ErrPaused, "PAUSED"},
	{ErrInvalidHealthData, "INVALID_HEALTH_DATA"},
	{ErrGoalsNotMet, "GOALS_NOT_MET"},
	{ErrCooldownNotMet, "COOLDOWN_NOT_MET"},
	{ErrInvalidChallenge, "INVALID_CHALLENGE"},
	{ErrChallengeNotFound, "CHALLENGE_NOT_FOUND"},
	{ErrChallengeInactive, "CHALLENGE_INACTIVE"},
	{ErrAlreadyJoined, "ALREADY_JOINED"},
	{ErrNotParticipant, "NOT_PARTICIPANT"},
	{ErrChallengeNotExpired, "CHALLENGE_NOT_EXPIRED"},
	{ErrUnauthorized, "UNAUTHORIZED"},
	{ErrInsufficientPoolBalance, "INSUFFICIENT_POOL_BALANCE"},
	{ErrInvalidAmount, "INVALID_AMOUNT"},
}

// Reason returns the machine-readable reason of a business failure and
// false for any other error (infrastructure faults included).
func Reason(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	for _, b := range businessErrors {
		if errors.Is(err, b.err) {
			return b.reason, true
		}
	}
	return "", false
}

// FromReason is the inverse of Reason. It returns nil for unknown reasons.
func FromReason(reason string) error {
	for _, b := range businessErrors {
		if b.reason == reason {
			return b.err
		}
	}
	return nil
}

// IsBusiness reports whether err is one of the business failures above.
func IsBusiness(err error) bool {
	_, ok := Reason(err)
	return ok
}
