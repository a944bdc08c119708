package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dempa-dev/dempa/internal/access"
	"github.com/dempa-dev/dempa/internal/markdown"
	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/relay"
	"github.com/dempa-dev/dempa/internal/store"
)

// testEnv is one shared relay plus a clock that is strictly increasing
// across every node attached to it, so revisions never tie.
type testEnv struct {
	mem  *relay.Memory
	mu   sync.Mutex
	tick int64
}

func newTestEnv() *testEnv {
	return &testEnv{mem: relay.NewMemory(""), tick: 1000}
}

func (e *testEnv) now() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tick++
	return e.tick
}

// node is one identity's full service stack over the shared relay.
type node struct {
	store    *store.Store
	access   *access.Access
	boards   BoardService
	threads  ThreadService
	comments CommentService
	users    UserService
}

func (e *testEnv) newNode(t *testing.T) *node {
	t.Helper()
	signer, err := record.GenerateSigner()
	require.NoError(t, err)

	s := store.NewWithClock(signer, relay.NewPool([]relay.Relay{e.mem}, time.Second), 100, e.now)
	a := access.New(s)
	text := markdown.New()

	boards := NewBoard(s, a, text, e.now)
	return &node{
		store:    s,
		access:   a,
		boards:   boards,
		threads:  NewThread(s, a, text, e.now),
		comments: NewComment(s, a, e.now),
		users:    NewUser(s, boards, text),
	}
}

func (n *node) pubkey() string {
	return n.store.Signer().Pubkey()
}
