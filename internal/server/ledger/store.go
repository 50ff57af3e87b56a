// Package ledger is the durable state behind the reward engine. A Store
// runs each operation as one atomic transaction over a Tx; nothing written
// inside a failed Update is visible afterwards.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
)

// Store opens ledger transactions.
type Store interface {
	// Update runs fn in a read-write transaction and commits when fn returns
	// nil. fn may be invoked more than once if the backend has to retry a
	// conflicting transaction.
	Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// View runs fn against a consistent read-only snapshot.
	View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// Tx is the ledger as seen from inside one transaction. Lookups of absent
// records return common.ErrorNotFound; writes inside View return
// common.ErrorReadOnly.
type Tx interface {
	Globals(ctx context.Context) (*models.GlobalState, error)
	PutGlobals(ctx context.Context, g *models.GlobalState) error

	Profile(ctx context.Context, account string) (*models.UserProfile, error)
	PutProfile(ctx context.Context, p *models.UserProfile) error

	IdentityOwner(ctx context.Context, digest []byte) (string, error)
	PutIdentityOwner(ctx context.Context, digest []byte, account string) error

	Challenge(ctx context.Context, id uint64) (*models.Challenge, error)
	PutChallenge(ctx context.Context, c *models.Challenge) error
	ActiveChallenges(ctx context.Context) ([]models.Challenge, error)

	Participant(ctx context.Context, challengeID uint64, account string) (*models.Participant, error)
	PutParticipant(ctx context.Context, p *models.Participant) error
	Participants(ctx context.Context, challengeID uint64) ([]models.Participant, error)

	// Balance is zero for accounts that were never credited.
	Balance(ctx context.Context, account string) (*uint256.Int, error)
	PutBalance(ctx context.Context, account string, amount *uint256.Int) error

	AppendEvent(ctx context.Context, e *models.Event) error
	Events(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error)
}
