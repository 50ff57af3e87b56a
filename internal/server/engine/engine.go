// Package engine holds the FitMint reward rules: identity verification,
// daily claims with streaks, group challenges and treasury control. Every
// mutating operation runs as a single ledger transaction under the engine
// mutex, so operations are totally ordered and never partially applied.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/ledger"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/dmitrijs2005/fitmint/internal/timex"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// ReportVerifier checks the attestation that accompanies an activity
// report. A non-nil error rejects the claim as invalid health data.
type ReportVerifier interface {
	VerifyReport(ctx context.Context, account string, r Report) error
}

// Publisher receives events after their transaction committed.
type Publisher interface {
	Publish(ctx context.Context, e models.Event)
}

// Recorder observes operation outcomes and payouts.
type Recorder interface {
	Operation(op string, err error, elapsed time.Duration)
	Payout(kind string, amount *uint256.Int)
}

type nopRecorder struct{}

func (nopRecorder) Operation(string, error, time.Duration) {}
func (nopRecorder) Payout(string, *uint256.Int)          {}

// Engine applies reward operations to a ledger.
type Engine struct {
	mu sync.Mutex

	store  ledger.Store
	owner  string
	policy Policy

	nowFn      func() time.Time
	newID      func() string
	verifier   ReportVerifier
	publishers []Publisher
	recorder   Recorder
	logger     logging.Logger
}

// New constructs an engine over store. owner is the only account allowed
// to run administrative operations.
func New(store ledger.Store, owner string, policy Policy) *Engine {
	return &Engine{
		store:    store,
		owner:    owner,
		policy:   policy,
		nowFn:    time.Now,
		newID:    func() string { return uuid.NewString() },
		recorder: nopRecorder{},
		logger:   logging.Nop{},
	}
}

// SetNowFunc overrides the time source used for deterministic testing.
func (e *Engine) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	e.nowFn = now
}

// SetReportVerifier installs the optional attestation check for claims.
func (e *Engine) SetReportVerifier(v ReportVerifier) { e.verifier = v }

// AddPublisher registers a receiver for committed events.
func (e *Engine) AddPublisher(p Publisher) {
	if p != nil {
		e.publishers = append(e.publishers, p)
	}
}

// SetRecorder configures operation metrics.
func (e *Engine) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	e.recorder = r
}

// SetLogger configures the engine logger.
func (e *Engine) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.Nop{}
	}
	e.logger = l.With("module", "engine")
}

// Policy returns the reward rules the engine was built with.
func (e *Engine) Policy() Policy { return e.policy }

// Owner returns the administrative account.
func (e *Engine) Owner() string { return e.owner }

func (e *Engine) isOwner(caller string) bool {
	return caller != "" && caller == e.owner
}

// Bootstrap creates the global state from genesis when the ledger is empty.
// It reports whether anything was written.
func (e *Engine) Bootstrap(ctx context.Context, genesis models.Genesis) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var created *models.Event
	err := e.store.Update(ctx, func(ctx context.Context, tx ledger.Tx) error {
		created = nil

		_, err := tx.Globals(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("load globals: %w", err)
		}

		g := models.NewGlobalState(genesis, e.nowFn())
		op := &opState{tx: tx, g: g, now: g.LastTimestamp, newID: e.newID}
		op.emit(models.EventLedgerCreated, e.owner, nil, &genesis.Treasury, map[string]string{
			"dailyPool": genesis.DailyPool.Dec(),
			"paused":    fmt.Sprint(genesis.Paused),
		})
		if err := op.flush(ctx); err != nil {
			return err
		}
		created = &op.events[0]
		return nil
	})
	if err != nil {
		return false, err
	}
	if created == nil {
		return false, nil
	}

	e.logger.Info(ctx, "ledger created", "treasury", genesis.Treasury.Dec(), "daily_pool", genesis.DailyPool.Dec(), "paused", genesis.Paused)
	e.publish(ctx, []models.Event{*created})
	return true, nil
}

// opState is the working set of one operation.
type opState struct {
	tx     ledger.Tx
	g      *models.GlobalState
	now    time.Time
	newID  func() string
	events []models.Event
}

func (s *opState) emit(typ models.EventType, account string, challengeID *uint64, amount *uint256.Int, attrs map[string]string) {
	ev := models.Event{
		Seq:         s.g.NextEventSeq,
		ID:          s.newID(),
		Type:        typ,
		Account:     account,
		ChallengeID: challengeID,
		Attributes:  attrs,
		At:          s.now,
	}
	if amount != nil {
		ev.Amount = new(uint256.Int).Set(amount)
	}
	s.g.NextEventSeq++
	s.events = append(s.events, ev)
}

// credit adds amount to the balance of account.
func (s *opState) credit(ctx context.Context, account string, amount *uint256.Int) error {
	bal, err := s.tx.Balance(ctx, account)
	if err != nil {
		return fmt.Errorf("load balance: %w", err)
	}
	if _, overflow := bal.AddOverflow(bal, amount); overflow {
		return common.ErrInvalidAmount
	}
	return s.tx.PutBalance(ctx, account, bal)
}

// debitTreasury removes amount from the treasury or fails without change.
func (s *opState) debitTreasury(amount *uint256.Int) error {
	if s.g.TreasuryBalance.Lt(amount) {
		return common.ErrInsufficientPoolBalance
	}
	s.g.TreasuryBalance.Sub(&s.g.TreasuryBalance, amount)
	return nil
}

// releaseReservation lowers the reserved prize total, saturating at zero.
func (s *opState) releaseReservation(amount *uint256.Int) {
	if s.g.ReservedPrizes.Lt(amount) {
		s.g.ReservedPrizes.Clear()
		return
	}
	s.g.ReservedPrizes.Sub(&s.g.ReservedPrizes, amount)
}

func (s *opState) flush(ctx context.Context) error {
	s.g.LastTimestamp = s.now
	for i := range s.events {
		if err := s.tx.AppendEvent(ctx, &s.events[i]); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}
	if err := s.tx.PutGlobals(ctx, s.g); err != nil {
		return fmt.Errorf("store globals: %w", err)
	}
	return nil
}

// apply runs fn inside one ledger transaction. now is read once, clamped
// so it never runs behind the last committed operation. Events are
// published only after commit.
func (e *Engine) apply(ctx context.Context, op string, fn func(ctx context.Context, s *opState) error) ([]models.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	var events []models.Event

	err := e.store.Update(ctx, func(ctx context.Context, tx ledger.Tx) error {
		events = nil

		g, err := tx.Globals(ctx)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotBootstrapped
			}
			return fmt.Errorf("load globals: %w", err)
		}

		s := &opState{tx: tx, g: g, now: timex.Max(e.nowFn().UTC(), g.LastTimestamp), newID: e.newID}
		if err := fn(ctx, s); err != nil {
			return err
		}
		if err := s.flush(ctx); err != nil {
			return err
		}
		events = s.events
		return nil
	})

	e.recorder.Operation(op, err, time.Since(started))
	if err != nil {
		if common.IsBusiness(err) {
			e.logger.Debug(ctx, "operation rejected", "op", op, "reason", err.Error())
		} else {
			e.logger.Error(ctx, "operation failed", "op", op, "error", err)
		}
		return nil, err
	}

	e.publish(ctx, events)
	return events, nil
}

func (e *Engine) publish(ctx context.Context, events []models.Event) {
	for _, ev := range events {
		for _, p := range e.publishers {
			p.Publish(ctx, ev)
		}
	}
}

// lastEvent returns the final event of a successful operation.
func lastEvent(events []models.Event) *models.Event {
	if len(events) == 0 {
		return nil
	}
	ev := events[len(events)-1]
	return &ev
}

func idPtr(id uint64) *uint64 { return &id }
