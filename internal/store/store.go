// Package store turns the append-only relay stream into an entity view.
// Relays hold every revision ever published; the store verifies signatures,
// groups revisions by stable id and resolves each group last-write-wins, so
// callers see exactly one current value per entity.
package store

import (
	"context"
	"time"

	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/relay"
	"github.com/dempa-dev/dempa/shared/logger"
	"github.com/dempa-dev/dempa/shared/middleware/metrics"
)

// Store publishes entities as signed records and reads them back resolved.
// All writes are signed with the node's own key; reads accept records from
// any origin that verifies.
type Store struct {
	signer *record.Signer
	pool   *relay.Pool
	limit  int

	// now supplies record timestamps; injectable so tests can control
	// last-write-wins ordering.
	now func() int64
}

func New(signer *record.Signer, pool *relay.Pool, queryLimit int) *Store {
	return NewWithClock(signer, pool, queryLimit, func() int64 { return time.Now().Unix() })
}

// NewWithClock lets tests drive record timestamps explicitly.
func NewWithClock(signer *record.Signer, pool *relay.Pool, queryLimit int, now func() int64) *Store {
	if queryLimit <= 0 {
		queryLimit = 500
	}
	return &Store{
		signer: signer,
		pool:   pool,
		limit:  queryLimit,
		now:    now,
	}
}

// Signer exposes the node identity for callers that need the author pubkey.
func (s *Store) Signer() *record.Signer {
	return s.signer
}

// Publish signs entity as a revision of (kind, id) and submits it to every
// relay. Timestamps have second granularity: two revisions in the same
// second tie-break on record id, so the caller must not assume its own
// write wins an in-second race.
func (s *Store) Publish(ctx context.Context, entity any, kind int, id string) error {
	rec, err := record.Encode(s.signer, entity, kind, id, s.now())
	if err != nil {
		return err
	}
	s.pool.Publish(ctx, rec)
	metrics.CountPublish(kind)
	return nil
}

// newer reports whether a should supersede b under last-write-wins:
// greatest claimed timestamp wins, ties go to the lexically greater id.
func newer(a, b record.Record) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.ID > b.ID
}

// resolve collapses a revision stream into the winning record per stable id.
// Records that fail verification are dropped as if never received.
func resolve(recs []record.Record) map[string]record.Record {
	winners := make(map[string]record.Record)
	for _, rec := range recs {
		if !record.Verify(rec) {
			logger.Log.Debug("dropping unverifiable record", "record", rec.ID, "kind", rec.Kind)
			continue
		}
		id := rec.StableID()
		if id == "" {
			continue
		}
		if cur, ok := winners[id]; !ok || newer(rec, cur) {
			winners[id] = rec
		}
	}
	return winners
}

// Get fetches the current revision of (kind, id) and decodes it into a T.
// The second return is false when no verifiable revision exists; transport
// errors never surface here because the pool degrades to partial results.
func Get[T any](ctx context.Context, s *Store, kind int, id string) (T, bool, error) {
	var zero T

	recs := s.pool.Query(ctx, relay.Filter{Kind: kind, Limit: s.limit, Search: id})
	var winner record.Record
	found := false
	for _, rec := range recs {
		if rec.StableID() != id || !record.Verify(rec) {
			continue
		}
		if !found || newer(rec, winner) {
			winner = rec
			found = true
		}
	}
	if !found {
		return zero, false, nil
	}

	// A winner with an unparseable payload counts as absent, like any
	// other invalid record.
	var entity T
	if err := record.Decode(winner, &entity); err != nil {
		logger.Log.Warn("skipping undecodable record", "record", winner.ID, "err", err)
		return zero, false, nil
	}
	return entity, true, nil
}

// List fetches every entity of a kind, one resolved value per stable id.
// Order is unspecified; callers sort by their own domain fields.
func List[T any](ctx context.Context, s *Store, kind int) ([]T, error) {
	recs := s.pool.Query(ctx, relay.Filter{Kind: kind, Limit: s.limit})
	winners := resolve(recs)

	out := make([]T, 0, len(winners))
	for _, rec := range winners {
		var entity T
		if err := record.Decode(rec, &entity); err != nil {
			logger.Log.Warn("skipping undecodable record", "record", rec.ID, "err", err)
			continue
		}
		out = append(out, entity)
	}
	return out, nil
}
