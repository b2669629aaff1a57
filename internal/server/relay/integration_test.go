package relay_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/client/awareness"
	"github.com/iudanet/docsync/internal/client/poller"
	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/server/metrics"
	"github.com/iudanet/docsync/internal/server/relay"
	"github.com/iudanet/docsync/internal/server/storage/sqlite"
)

type peer struct {
	registry *poller.Registry
	doc      *document.Document
	presence *awareness.Awareness
	synced   atomic.Bool
}

func newPeer(t *testing.T, transport poller.Transport, clientID uint64) *peer {
	t.Helper()

	doc, err := document.New("")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := &peer{
		registry: poller.New(transport, poller.DefaultConfig(), logger, poller.WithManualPolling()),
		doc:      doc,
		presence: awareness.New(clientID),
	}
	t.Cleanup(p.registry.Close)
	return p
}

func (p *peer) join(t *testing.T, room string) {
	t.Helper()
	ok := p.registry.RegisterRoom(room, p.doc, p.presence, func() { p.synced.Store(true) })
	require.True(t, ok)
}

func (p *peer) text(t *testing.T) string {
	t.Helper()
	s, err := p.doc.Text()
	require.NoError(t, err)
	return s
}

// rounds опрашивает пиров по очереди n раз
func rounds(t *testing.T, n int, peers ...*peer) {
	t.Helper()
	for range n {
		for _, p := range peers {
			require.NoError(t, p.registry.PollOnce(context.Background()))
		}
	}
}

func newRelay(t *testing.T, threshold int) (*relay.Relay, *sqlite.Storage) {
	t.Helper()

	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cfg := relay.DefaultConfig()
	cfg.CompactionThreshold = threshold
	r := relay.New(s, cfg, metrics.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return r, s
}

func TestTwoClientsConverge(t *testing.T) {
	r, _ := newRelay(t, 50)
	a := newPeer(t, r, 1)
	b := newPeer(t, r, 2)

	a.join(t, "notes")
	_, err := a.doc.EditText("hello", -1)
	require.NoError(t, err)

	// один в комнате: очередь на паузе, на сервер ничего не уходит
	rounds(t, 3, a)
	info, ok := a.registry.Room("notes")
	require.True(t, ok)
	assert.True(t, info.Paused)
	assert.Equal(t, 2, info.Pending)

	b.join(t, "notes")
	rounds(t, 6, a, b)

	assert.True(t, a.synced.Load())
	assert.True(t, b.synced.Load())
	assert.Equal(t, "hello", b.text(t))

	_, err = b.doc.EditText("hello world", 5)
	require.NoError(t, err)
	a.presence.SetLocalState(map[string]any{"name": "ann"})
	rounds(t, 2, a, b)

	assert.Equal(t, "hello world", a.text(t))
	assert.Equal(t, awareness.Snapshot{1: map[string]any{"name": "ann"}}, b.presence.States())
}

func TestCompactionRoundTrip(t *testing.T) {
	r, log := newRelay(t, 3)
	a := newPeer(t, r, 1)
	b := newPeer(t, r, 2)
	a.join(t, "notes")
	b.join(t, "notes")
	rounds(t, 6, a, b)
	require.True(t, a.synced.Load())
	require.True(t, b.synced.Load())

	for _, text := range []string{"a", "ab", "abc", "abcd", "abcde"} {
		_, err := a.doc.EditText(text, -1)
		require.NoError(t, err)
	}
	rounds(t, 4, a, b)

	assert.Equal(t, "abcde", b.text(t))

	// пять обновлений слиты в одну запись
	count, err := log.CountMergeable(context.Background(), "notes")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// новый участник восстанавливает документ из сжатого журнала
	c := newPeer(t, r, 3)
	c.join(t, "notes")
	rounds(t, 4, a, b, c)

	assert.Equal(t, "abcde", c.text(t))
	assert.True(t, c.synced.Load())
}
