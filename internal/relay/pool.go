package relay

import (
	"context"
	"sync"
	"time"

	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/shared/logger"
)

// Pool fans publishes and queries out to every configured relay. Publishing
// is fire-and-forget: submission failures are logged, never returned.
// Queries impose a bounded wait and merge whatever arrived in time; a slow
// or dead relay degrades results, it does not fail them.
type Pool struct {
	relays  []Relay
	maxWait time.Duration
}

func NewPool(relays []Relay, maxWait time.Duration) *Pool {
	if maxWait <= 0 {
		maxWait = 2 * time.Second
	}
	return &Pool{relays: relays, maxWait: maxWait}
}

// Publish submits the record to every relay. The caller observes success
// only in the sense that submission did not fail locally; there is no
// delivery acknowledgment and a submitted record cannot be retracted.
func (p *Pool) Publish(ctx context.Context, rec record.Record) {
	ctx, cancel := context.WithTimeout(ctx, p.maxWait)
	defer cancel()

	var wg sync.WaitGroup
	for _, r := range p.relays {
		wg.Add(1)
		go func(r Relay) {
			defer wg.Done()
			if err := r.Submit(ctx, rec); err != nil {
				logger.Log.Warn("relay submit failed", "relay", r.URL(), "record", rec.ID, "err", err)
			}
		}(r)
	}
	wg.Wait()
}

// Query collects records from all relays within the bounded wait. Timeouts
// and per-relay errors yield whatever subset arrived; the result may contain
// duplicates and superseded revisions.
func (p *Pool) Query(ctx context.Context, f Filter) []record.Record {
	ctx, cancel := context.WithTimeout(ctx, p.maxWait)
	defer cancel()

	results := make(chan []record.Record, len(p.relays))
	for _, r := range p.relays {
		go func(r Relay) {
			recs, err := r.Query(ctx, f)
			if err != nil {
				logger.Log.Warn("relay query failed", "relay", r.URL(), "err", err)
				results <- nil
				return
			}
			results <- recs
		}(r)
	}

	var merged []record.Record
	for range p.relays {
		select {
		case recs := <-results:
			merged = append(merged, recs...)
		case <-ctx.Done():
			return merged
		}
	}
	return merged
}

func (p *Pool) Close() error {
	var firstErr error
	for _, r := range p.relays {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
