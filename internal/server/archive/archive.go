// Package archive exports the ledger audit log to S3-compatible object
// storage as JSON Lines, one object per batch. Object keys carry the first
// and last sequence number, so the archiver can resume from the bucket
// listing alone.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

const (
	DefaultBatchSize = 500
	contentType      = "application/x-ndjson"
	keyFormat        = "%020d-%020d.jsonl"
)

// EventSource pages through committed events.
type EventSource interface {
	ListEvents(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error)
}

// ObjectStore is the subset of the S3 client the archiver needs.
type ObjectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Archiver copies new events to the bucket. Run is safe to call from a
// scheduler; overlapping runs are serialized.
type Archiver struct {
	mu sync.Mutex

	source    EventSource
	store     ObjectStore
	bucket    string
	prefix    string
	batchSize int

	cursor  uint64
	resumed bool

	logger     logging.Logger
	onArchived func(n int)
}

// New returns an archiver writing under prefix in bucket.
func New(source EventSource, store ObjectStore, bucket, prefix string, logger logging.Logger) *Archiver {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Archiver{
		source:    source,
		store:     store,
		bucket:    bucket,
		prefix:    prefix,
		batchSize: DefaultBatchSize,
		logger:    logger.With("module", "archive"),
	}
}

// SetBatchSize limits how many events go into one object.
func (a *Archiver) SetBatchSize(n int) {
	if n > 0 {
		a.batchSize = n
	}
}

// OnArchived registers a callback invoked with the number of events in
// every object written.
func (a *Archiver) OnArchived(fn func(n int)) { a.onArchived = fn }

// Cursor returns the highest archived sequence number.
func (a *Archiver) Cursor() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cursor
}

// ObjectKey returns the key of the object holding events first..last.
func ObjectKey(prefix string, first, last uint64) string {
	return prefix + fmt.Sprintf(keyFormat, first, last)
}

// lastSeqFromKey parses the upper bound out of an archive object key.
func lastSeqFromKey(prefix, key string) (uint64, bool) {
	name, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return 0, false
	}
	name, ok = strings.CutSuffix(name, ".jsonl")
	if !ok {
		return 0, false
	}
	lo, hi, ok := strings.Cut(name, "-")
	if !ok {
		return 0, false
	}
	first, err := strconv.ParseUint(lo, 10, 64)
	if err != nil {
		return 0, false
	}
	last, err := strconv.ParseUint(hi, 10, 64)
	if err != nil || last < first {
		return 0, false
	}
	return last, true
}

// resume finds the archive cursor by listing existing objects.
func (a *Archiver) resume(ctx context.Context) error {
	p := s3.NewListObjectsV2Paginator(a.store, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(a.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("list archive: %w", err)
		}
		for _, obj := range page.Contents {
			if last, ok := lastSeqFromKey(a.prefix, aws.ToString(obj.Key)); ok && last > a.cursor {
				a.cursor = last
			}
		}
	}
	a.resumed = true
	return nil
}

// Run exports every event committed after the cursor. It returns the number
// of events written.
func (a *Archiver) Run(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.resumed {
		if err := a.resume(ctx); err != nil {
			return 0, err
		}
		a.logger.Info(ctx, "archive cursor restored", "cursor", a.cursor)
	}

	total := 0
	for {
		events, err := a.source.ListEvents(ctx, a.cursor, a.batchSize)
		if err != nil {
			return total, fmt.Errorf("list events: %w", err)
		}
		if len(events) == 0 {
			return total, nil
		}

		if err := a.put(ctx, events); err != nil {
			return total, err
		}

		a.cursor = events[len(events)-1].Seq
		total += len(events)
		if a.onArchived != nil {
			a.onArchived(len(events))
		}
		if len(events) < a.batchSize {
			return total, nil
		}
	}
}

func (a *Archiver) put(ctx context.Context, events []models.Event) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			return fmt.Errorf("encode event %d: %w", events[i].Seq, err)
		}
	}

	first, last := events[0].Seq, events[len(events)-1].Seq
	key := ObjectKey(a.prefix, first, last)
	_, err := a.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	a.logger.Debug(ctx, "archived events", "key", key, "count", len(events))
	return nil
}
