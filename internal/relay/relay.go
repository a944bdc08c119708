// Package relay defines the transport contract the core consumes: submit a
// signed record, query records by kind. Relays are append-only and
// multi-source; the same logical entity may come back zero, one or many
// times, in any order. Conflict resolution is the store's job, not the
// transport's.
package relay

import (
	"context"
	"strings"

	"github.com/dempa-dev/dempa/internal/record"
)

// Filter selects records by kind. Search, when set, is a best-effort hint
// matched loosely against the stable id; callers must always re-verify by
// exact tag match.
type Filter struct {
	Kind   int
	Limit  int
	Search string
}

// Relay is a single transport endpoint.
type Relay interface {
	Submit(ctx context.Context, rec record.Record) error
	Query(ctx context.Context, f Filter) ([]record.Record, error)
	URL() string
	Close() error
}

func matches(rec record.Record, f Filter) bool {
	if rec.Kind != f.Kind {
		return false
	}
	if f.Search != "" && !strings.Contains(rec.StableID(), f.Search) {
		return false
	}
	return true
}
