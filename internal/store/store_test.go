package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dempa-dev/dempa/internal/record"
	"github.com/dempa-dev/dempa/internal/relay"
)

type note struct {
	Text string `json:"text"`
}

// newTestStore builds a store over a fresh in-memory relay with a manual
// clock, returning the relay so tests can share it across stores.
func newTestStore(t *testing.T) (*Store, *relay.Memory) {
	t.Helper()
	signer, err := record.GenerateSigner()
	require.NoError(t, err)

	mem := relay.NewMemory("")
	s := New(signer, relay.NewPool([]relay.Relay{mem}, time.Second), 100)
	return s, mem
}

func attach(t *testing.T, mem *relay.Memory) *Store {
	t.Helper()
	signer, err := record.GenerateSigner()
	require.NoError(t, err)
	return New(signer, relay.NewPool([]relay.Relay{mem}, time.Second), 100)
}

func setClock(s *Store, at int64) {
	s.now = func() int64 { return at }
}

func TestPublishGetRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	setClock(s, 1000)

	require.NoError(t, s.Publish(ctx, note{Text: "hello"}, record.KindThread, "t1"))

	got, ok, err := Get[note](ctx, s, record.KindThread, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Text)
}

func TestGetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, ok, err := Get[note](context.Background(), s, record.KindThread, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastWriteWinsByTimestamp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	setClock(s, 1000)
	require.NoError(t, s.Publish(ctx, note{Text: "old"}, record.KindBoard, "b1"))
	setClock(s, 2000)
	require.NoError(t, s.Publish(ctx, note{Text: "new"}, record.KindBoard, "b1"))

	got, ok, err := Get[note](ctx, s, record.KindBoard, "b1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Text)
}

func TestLastWriteWinsIgnoresArrivalOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Newer revision arrives first; the stale one must not shadow it.
	setClock(s, 2000)
	require.NoError(t, s.Publish(ctx, note{Text: "new"}, record.KindBoard, "b1"))
	setClock(s, 1000)
	require.NoError(t, s.Publish(ctx, note{Text: "old"}, record.KindBoard, "b1"))

	got, _, err := Get[note](ctx, s, record.KindBoard, "b1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Text)
}

func TestLastWriteWinsTieBreaksOnRecordID(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	setClock(s, 1000)

	require.NoError(t, s.Publish(ctx, note{Text: "a"}, record.KindBoard, "b1"))
	require.NoError(t, s.Publish(ctx, note{Text: "b"}, record.KindBoard, "b1"))

	// Resolution is deterministic: the record with the lexically greater
	// id wins regardless of read order.
	recs, err := mem.Query(ctx, relay.Filter{Kind: record.KindBoard})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	want := recs[0]
	if recs[1].ID > want.ID {
		want = recs[1]
	}

	var expected note
	require.NoError(t, record.Decode(want, &expected))

	got, _, err := Get[note](ctx, s, record.KindBoard, "b1")
	require.NoError(t, err)
	assert.Equal(t, expected.Text, got.Text)
}

func TestListResolvesOnePerEntity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	setClock(s, 1000)
	require.NoError(t, s.Publish(ctx, note{Text: "t1 v1"}, record.KindThread, "t1"))
	require.NoError(t, s.Publish(ctx, note{Text: "t2 v1"}, record.KindThread, "t2"))
	setClock(s, 2000)
	require.NoError(t, s.Publish(ctx, note{Text: "t1 v2"}, record.KindThread, "t1"))

	got, err := List[note](ctx, s, record.KindThread)
	require.NoError(t, err)
	require.Len(t, got, 2, "one resolved value per stable id")

	texts := []string{got[0].Text, got[1].Text}
	assert.ElementsMatch(t, []string{"t1 v2", "t2 v1"}, texts)
}

func TestTamperedRecordIsInvisible(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	setClock(s, 1000)

	require.NoError(t, s.Publish(ctx, note{Text: "genuine"}, record.KindThread, "t1"))

	// Forge a later revision with a broken signature. It claims a newer
	// timestamp but must never win.
	rec, err := record.Encode(s.Signer(), note{Text: "forged"}, record.KindThread, "t1", 9000)
	require.NoError(t, err)
	rec.Content = `{"text":"tampered"}`
	require.NoError(t, mem.Submit(ctx, rec))

	got, ok, err := Get[note](ctx, s, record.KindThread, "t1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "genuine", got.Text)

	list, err := List[note](ctx, s, record.KindThread)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "genuine", list[0].Text)
}

func TestUpdatesVisibleAcrossStores(t *testing.T) {
	a, mem := newTestStore(t)
	b := attach(t, mem)
	ctx := context.Background()

	setClock(a, 1000)
	require.NoError(t, a.Publish(ctx, note{Text: "from a"}, record.KindBoard, "shared"))

	got, ok, err := Get[note](ctx, b, record.KindBoard, "shared")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "from a", got.Text)

	// b republishes under its own key; both nodes converge on the newest
	// revision whatever its origin.
	setClock(b, 2000)
	require.NoError(t, b.Publish(ctx, note{Text: "from b"}, record.KindBoard, "shared"))

	got, _, err = Get[note](ctx, a, record.KindBoard, "shared")
	require.NoError(t, err)
	assert.Equal(t, "from b", got.Text)
}

func TestPublishAcrossRelayPool(t *testing.T) {
	signer, err := record.GenerateSigner()
	require.NoError(t, err)

	m1 := relay.NewMemory("mem://1")
	m2 := relay.NewMemory("mem://2")
	s := New(signer, relay.NewPool([]relay.Relay{m1, m2}, time.Second), 100)
	setClock(s, 1000)
	ctx := context.Background()

	require.NoError(t, s.Publish(ctx, note{Text: "everywhere"}, record.KindUser, "u1"))
	assert.Equal(t, 1, m1.Len())
	assert.Equal(t, 1, m2.Len())

	// Duplicates from multiple relays still resolve to one value.
	got, err := List[note](ctx, s, record.KindUser)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
