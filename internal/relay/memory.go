package relay

import (
	"context"
	"sort"
	"sync"

	"github.com/dempa-dev/dempa/internal/record"
)

// Memory is an in-process relay used by tests and dev mode. Like a real
// relay it is append-only and keeps every revision, including duplicates.
type Memory struct {
	mu      sync.RWMutex
	records []record.Record
	url     string
}

func NewMemory(url string) *Memory {
	if url == "" {
		url = "mem://local"
	}
	return &Memory{url: url}
}

func (m *Memory) Submit(ctx context.Context, rec record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Query(ctx context.Context, f Filter) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	var out []record.Record
	for _, rec := range m.records {
		if matches(rec, f) {
			out = append(out, rec)
		}
	}
	m.mu.RUnlock()

	// Newest first, so a limit keeps the revisions that can win
	// last-write-wins resolution.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Memory) URL() string { return m.url }

func (m *Memory) Close() error { return nil }

// Len reports how many physical records the relay holds, revisions included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
