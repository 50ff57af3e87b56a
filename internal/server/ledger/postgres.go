package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/dmitrijs2005/fitmint/internal/server/repositories/repomanager"
	"github.com/holiman/uint256"
)

// DefaultRetryAttempts bounds how often a serialization conflict is retried.
const DefaultRetryAttempts = 5

// PostgresStore runs every Update as a SERIALIZABLE transaction. The writer
// path reads the globals row FOR UPDATE, so concurrent server processes
// against one database are totally ordered.
type PostgresStore struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	attempts int
}

// NewPostgresStore wraps an open database whose schema is already migrated.
func NewPostgresStore(db *sql.DB, rm repomanager.RepositoryManager) *PostgresStore {
	return &PostgresStore{db: db, rm: rm, attempts: DefaultRetryAttempts}
}

// OpenPostgres connects to dsn with the pgx driver and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return NewPostgresStore(db, rm), nil
}

func (s *PostgresStore) Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	return dbx.WithRetryTx(ctx, s.db, opts, s.attempts, func(ctx context.Context, q dbx.DBTX) error {
		return fn(ctx, &pgTx{rm: s.rm, q: q})
	})
}

func (s *PostgresStore) View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, q dbx.DBTX) error {
		return fn(ctx, &pgTx{rm: s.rm, q: q, readOnly: true})
	})
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type pgTx struct {
	rm       repomanager.RepositoryManager
	q        dbx.DBTX
	readOnly bool
}

func (t *pgTx) writable() error {
	if t.readOnly {
		return common.ErrorReadOnly
	}
	return nil
}

func (t *pgTx) Globals(ctx context.Context) (*models.GlobalState, error) {
	return t.rm.Globals(t.q).Get(ctx, !t.readOnly)
}

func (t *pgTx) PutGlobals(ctx context.Context, g *models.GlobalState) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Globals(t.q).Put(ctx, g)
}

func (t *pgTx) Profile(ctx context.Context, account string) (*models.UserProfile, error) {
	return t.rm.Profiles(t.q).Get(ctx, account)
}

func (t *pgTx) PutProfile(ctx context.Context, p *models.UserProfile) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Profiles(t.q).Put(ctx, p)
}

func (t *pgTx) IdentityOwner(ctx context.Context, digest []byte) (string, error) {
	return t.rm.Identities(t.q).Owner(ctx, digest)
}

func (t *pgTx) PutIdentityOwner(ctx context.Context, digest []byte, account string) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Identities(t.q).Bind(ctx, digest, account)
}

func (t *pgTx) Challenge(ctx context.Context, id uint64) (*models.Challenge, error) {
	return t.rm.Challenges(t.q).Get(ctx, id)
}

func (t *pgTx) PutChallenge(ctx context.Context, c *models.Challenge) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Challenges(t.q).Put(ctx, c)
}

func (t *pgTx) ActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	return t.rm.Challenges(t.q).ListActive(ctx)
}

func (t *pgTx) Participant(ctx context.Context, challengeID uint64, account string) (*models.Participant, error) {
	return t.rm.Participants(t.q).Get(ctx, challengeID, account)
}

func (t *pgTx) PutParticipant(ctx context.Context, p *models.Participant) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Participants(t.q).Put(ctx, p)
}

func (t *pgTx) Participants(ctx context.Context, challengeID uint64) ([]models.Participant, error) {
	return t.rm.Participants(t.q).List(ctx, challengeID)
}

func (t *pgTx) Balance(ctx context.Context, account string) (*uint256.Int, error) {
	amount, err := t.rm.Balances(t.q).Get(ctx, account)
	if errors.Is(err, common.ErrorNotFound) {
		return new(uint256.Int), nil
	}
	return amount, err
}

func (t *pgTx) PutBalance(ctx context.Context, account string, amount *uint256.Int) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Balances(t.q).Put(ctx, account, amount)
}

func (t *pgTx) AppendEvent(ctx context.Context, e *models.Event) error {
	if err := t.writable(); err != nil {
		return err
	}
	return t.rm.Events(t.q).Append(ctx, e)
}

func (t *pgTx) Events(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error) {
	return t.rm.Events(t.q).List(ctx, afterSeq, limit)
}
