package ledger

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	keyGlobals           = "globals"
	prefixProfile        = "profile/"
	prefixIdentity       = "identity/"
	prefixChallenge      = "challenge/"
	prefixParticipant    = "participant/"
	prefixBalance        = "balance/"
	prefixEvent          = "event/"
	numericKeyFormat     = "%020d"
	participantKeyFormat = prefixParticipant + numericKeyFormat + "/"
)

func profileKey(account string) []byte { return []byte(prefixProfile + account) }

func identityKey(digest []byte) []byte { return []byte(prefixIdentity + hex.EncodeToString(digest)) }

func challengeKey(id uint64) []byte { return []byte(fmt.Sprintf(prefixChallenge+numericKeyFormat, id)) }

func participantPrefix(id uint64) []byte { return []byte(fmt.Sprintf(participantKeyFormat, id)) }

func participantKey(id uint64, account string) []byte {
	return append(participantPrefix(id), account...)
}

func balanceKey(account string) []byte { return []byte(prefixBalance + account) }

func eventKey(seq uint64) []byte { return []byte(fmt.Sprintf(prefixEvent+numericKeyFormat, seq)) }

// KVStore keeps the ledger in LevelDB as JSON values under prefixed keys.
// Numeric ids are zero padded so key order matches numeric order.
type KVStore struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a LevelDB ledger at path.
func OpenLevelDB(path string) (*KVStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("leveldb path required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve leveldb path: %w", err)
	}
	db, err := leveldb.OpenFile(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb ledger: %w", err)
	}
	return &KVStore{db: db}, nil
}

// NewMemoryStore returns a ledger held entirely in memory. It shares the
// LevelDB code path, so it has the same transactional semantics.
func NewMemoryStore() (*KVStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory ledger: %w", err)
	}
	return &KVStore{db: db}, nil
}

func (s *KVStore) Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tr, err := s.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("open transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tr.Discard()
			panic(p)
		}
		if err != nil {
			tr.Discard()
			return
		}
		if cerr := tr.Commit(); cerr != nil {
			err = fmt.Errorf("commit: %w", cerr)
		}
	}()

	return fn(ctx, &kvTx{r: tr, w: tr})
}

func (s *KVStore) View(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := s.db.GetSnapshot()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer snap.Release()

	return fn(ctx, &kvTx{r: snap})
}

func (s *KVStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type kvReader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

type kvWriter interface {
	Put(key, value []byte, wo *opt.WriteOptions) error
}

// kvTx reads through r and writes through w. A nil w marks a read-only view.
type kvTx struct {
	r kvReader
	w kvWriter
}

func (t *kvTx) get(key []byte, v any) error {
	raw, err := t.r.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("leveldb get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (t *kvTx) put(key []byte, v any) error {
	if t.w == nil {
		return common.ErrorReadOnly
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := t.w.Put(key, raw, nil); err != nil {
		return fmt.Errorf("leveldb put %s: %w", key, err)
	}
	return nil
}

// scan decodes every value in [start, limit) with decode, stopping early
// once max values were accepted (max <= 0 means no limit).
func (t *kvTx) scan(rng *util.Range, max int, decode func(raw []byte) (bool, error)) error {
	it := t.r.NewIterator(rng, nil)
	defer it.Release()

	n := 0
	for it.Next() {
		ok, err := decode(it.Value())
		if err != nil {
			return fmt.Errorf("decode %s: %w", it.Key(), err)
		}
		if ok {
			n++
			if max > 0 && n >= max {
				break
			}
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("leveldb iterate: %w", err)
	}
	return nil
}

func (t *kvTx) Globals(ctx context.Context) (*models.GlobalState, error) {
	g := &models.GlobalState{}
	if err := t.get([]byte(keyGlobals), g); err != nil {
		return nil, err
	}
	return g, nil
}

func (t *kvTx) PutGlobals(ctx context.Context, g *models.GlobalState) error {
	return t.put([]byte(keyGlobals), g)
}

func (t *kvTx) Profile(ctx context.Context, account string) (*models.UserProfile, error) {
	p := &models.UserProfile{}
	if err := t.get(profileKey(account), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (t *kvTx) PutProfile(ctx context.Context, p *models.UserProfile) error {
	return t.put(profileKey(p.Account), p)
}

func (t *kvTx) IdentityOwner(ctx context.Context, digest []byte) (string, error) {
	var account string
	if err := t.get(identityKey(digest), &account); err != nil {
		return "", err
	}
	return account, nil
}

func (t *kvTx) PutIdentityOwner(ctx context.Context, digest []byte, account string) error {
	return t.put(identityKey(digest), account)
}

func (t *kvTx) Challenge(ctx context.Context, id uint64) (*models.Challenge, error) {
	c := &models.Challenge{}
	if err := t.get(challengeKey(id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (t *kvTx) PutChallenge(ctx context.Context, c *models.Challenge) error {
	return t.put(challengeKey(c.ID), c)
}

func (t *kvTx) ActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	var result []models.Challenge
	err := t.scan(util.BytesPrefix([]byte(prefixChallenge)), 0, func(raw []byte) (bool, error) {
		var c models.Challenge
		if err := json.Unmarshal(raw, &c); err != nil {
			return false, err
		}
		if !c.IsActive {
			return false, nil
		}
		result = append(result, c)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *kvTx) Participant(ctx context.Context, challengeID uint64, account string) (*models.Participant, error) {
	p := &models.Participant{}
	if err := t.get(participantKey(challengeID, account), p); err != nil {
		return nil, err
	}
	return p, nil
}

func (t *kvTx) PutParticipant(ctx context.Context, p *models.Participant) error {
	return t.put(participantKey(p.ChallengeID, p.Account), p)
}

func (t *kvTx) Participants(ctx context.Context, challengeID uint64) ([]models.Participant, error) {
	var result []models.Participant
	err := t.scan(util.BytesPrefix(participantPrefix(challengeID)), 0, func(raw []byte) (bool, error) {
		var p models.Participant
		if err := json.Unmarshal(raw, &p); err != nil {
			return false, err
		}
		result = append(result, p)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (t *kvTx) Balance(ctx context.Context, account string) (*uint256.Int, error) {
	amount := new(uint256.Int)
	if err := t.get(balanceKey(account), amount); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return new(uint256.Int), nil
		}
		return nil, err
	}
	return amount, nil
}

func (t *kvTx) PutBalance(ctx context.Context, account string, amount *uint256.Int) error {
	return t.put(balanceKey(account), amount)
}

func (t *kvTx) AppendEvent(ctx context.Context, e *models.Event) error {
	return t.put(eventKey(e.Seq), e)
}

func (t *kvTx) Events(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error) {
	rng := util.BytesPrefix([]byte(prefixEvent))
	rng.Start = eventKey(afterSeq + 1)

	var result []models.Event
	err := t.scan(rng, limit, func(raw []byte) (bool, error) {
		var e models.Event
		if err := json.Unmarshal(raw, &e); err != nil {
			return false, err
		}
		result = append(result, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
