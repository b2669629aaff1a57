package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/client/awareness"
	"github.com/iudanet/docsync/internal/codec"
	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/pkg/api"
)

var testConfig = Config{
	BaseInterval:   3 * time.Second,
	FastInterval:   500 * time.Millisecond,
	MaxInterval:    60 * time.Second,
	RequestTimeout: time.Second,
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDoc(t *testing.T) *document.Document {
	t.Helper()
	d, err := document.New("")
	require.NoError(t, err)
	return d
}

func presenceOf(ids ...uint64) map[uint64]json.RawMessage {
	out := make(map[uint64]json.RawMessage, len(ids))
	for _, id := range ids {
		out[id] = json.RawMessage(fmt.Sprintf(`{"id":%d}`, id))
	}
	return out
}

// respond возвращает SyncFunc, которая отвечает по очереди заданными ответами
func respond(t *testing.T, steps ...func(req api.SyncRequest) (*api.SyncResponse, error)) func(context.Context, api.SyncRequest) (*api.SyncResponse, error) {
	var n atomic.Int32
	return func(_ context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
		i := int(n.Add(1)) - 1
		require.Less(t, i, len(steps), "unexpected sync call")
		return steps[i](req)
	}
}

func ok(rooms ...api.RoomResponse) func(api.SyncRequest) (*api.SyncResponse, error) {
	return func(api.SyncRequest) (*api.SyncResponse, error) {
		return &api.SyncResponse{Rooms: rooms}, nil
	}
}

func fail(api.SyncRequest) (*api.SyncResponse, error) {
	return nil, &api.StatusError{StatusCode: 503}
}

func TestRegisterRoom_Idempotent(t *testing.T) {
	reg := New(&TransportMock{}, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	doc := newDoc(t)
	pres := awareness.New(1)

	assert.True(t, reg.RegisterRoom("r", doc, pres, nil))
	assert.False(t, reg.RegisterRoom("r", doc, pres, nil))

	info, found := reg.Room("r")
	require.True(t, found)
	assert.Equal(t, 1, info.Pending)
	assert.True(t, info.Paused)
	assert.Equal(t, uint64(1), info.ClientID)
	assert.Equal(t, []string{"r"}, reg.Rooms())
}

// TestPollOnce_PeerDetectedFastCadence комната с after=0 получает end_cursor=50
// и двух участников: интервал быстрый, очередь снята с паузы
func TestPollOnce_PeerDetectedFastCadence(t *testing.T) {
	mock := &TransportMock{}
	mock.SyncFunc = respond(t, ok(api.RoomResponse{
		Room:      "r",
		EndCursor: 50,
		Awareness: presenceOf(1, 2),
		Updates:   []api.Update{},
	}))
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	pres := awareness.New(1)
	reg.RegisterRoom("r", newDoc(t), pres, nil)

	require.NoError(t, reg.PollOnce(context.Background()))

	require.Len(t, mock.SyncCalls(), 1)
	req := mock.SyncCalls()[0].Req
	require.Len(t, req.Rooms, 1)
	assert.Equal(t, int64(0), req.Rooms[0].After)
	assert.Equal(t, uint64(1), req.Rooms[0].ClientID)
	assert.Equal(t, "r", req.Rooms[0].Room)
	assert.JSONEq(t, "null", string(req.Rooms[0].Awareness))
	// очередь была на паузе: step1 не отправлялся
	assert.NotNil(t, req.Rooms[0].Updates)
	assert.Empty(t, req.Rooms[0].Updates)

	assert.Equal(t, testConfig.FastInterval, reg.Interval())
	info, _ := reg.Room("r")
	assert.Equal(t, int64(50), info.EndCursor)
	assert.False(t, info.Paused)
	assert.Equal(t, 1, info.Pending)

	// зеркало присутствия не содержит себя
	assert.Equal(t, awareness.Snapshot{2: map[string]any{"id": float64(2)}}, pres.States())
}

func TestPollOnce_AloneStaysSlowAndPaused(t *testing.T) {
	mock := &TransportMock{}
	mock.SyncFunc = respond(t, ok(api.RoomResponse{Room: "r", EndCursor: 3, Awareness: presenceOf(1)}))
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	reg.RegisterRoom("r", newDoc(t), awareness.New(1), nil)
	require.NoError(t, reg.PollOnce(context.Background()))

	assert.Equal(t, testConfig.BaseInterval, reg.Interval())
	info, _ := reg.Room("r")
	assert.True(t, info.Paused)
	assert.Equal(t, int64(3), info.EndCursor)
}

// TestPollOnce_Backoff k ошибок подряд дают min(base*2^k, max), успех сбрасывает
func TestPollOnce_Backoff(t *testing.T) {
	steps := make([]func(api.SyncRequest) (*api.SyncResponse, error), 0)
	for i := 0; i < 6; i++ {
		steps = append(steps, fail)
	}
	steps = append(steps, ok(api.RoomResponse{Room: "r", Awareness: presenceOf(1)}))

	mock := &TransportMock{}
	mock.SyncFunc = respond(t, steps...)
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()
	reg.RegisterRoom("r", newDoc(t), awareness.New(1), nil)

	for k := 1; k <= 6; k++ {
		err := reg.PollOnce(context.Background())
		require.Error(t, err)
		var statusErr *api.StatusError
		assert.True(t, errors.As(err, &statusErr))

		want := testConfig.BaseInterval << k
		if want > testConfig.MaxInterval {
			want = testConfig.MaxInterval
		}
		assert.Equal(t, want, reg.Interval(), "after %d failures", k)
		assert.Equal(t, k, reg.Failures())
	}

	require.NoError(t, reg.PollOnce(context.Background()))
	assert.Equal(t, testConfig.BaseInterval, reg.Interval())
	assert.Equal(t, 0, reg.Failures())
}

// TestPollOnce_FailureRestoresQueue неудачная отправка возвращает записи,
// кроме compaction
func TestPollOnce_FailureRestoresQueue(t *testing.T) {
	src := newDoc(t)
	var srcPayloads [][]byte
	src.OnUpdate(func(u document.Update) { srcPayloads = append(srcPayloads, u.Payload) })
	_, err := src.EditText("x", 1)
	require.NoError(t, err)
	_, err = src.EditText("xy", 2)
	require.NoError(t, err)

	compactionRequest := []api.Update{
		codec.EncodeUpdate(models.NewSyncUpdate(models.KindUpdate, srcPayloads[0])),
		codec.EncodeUpdate(models.NewSyncUpdate(models.KindUpdate, srcPayloads[1])),
	}

	mock := &TransportMock{}
	mock.SyncFunc = respond(t,
		ok(api.RoomResponse{Room: "r", EndCursor: 1, Awareness: presenceOf(1, 2)}),
		fail,
		ok(api.RoomResponse{Room: "r", EndCursor: 2, Awareness: presenceOf(1, 2), CompactionRequest: compactionRequest}),
		fail,
	)
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	doc := newDoc(t)
	reg.RegisterRoom("r", doc, awareness.New(1), nil)
	ctx := context.Background()

	require.NoError(t, reg.PollOnce(ctx))
	_, err = doc.EditText("hi", 2)
	require.NoError(t, err)
	info, _ := reg.Room("r")
	require.Equal(t, 2, info.Pending)

	require.Error(t, reg.PollOnce(ctx))
	sent := mock.SyncCalls()[1].Req.Rooms[0].Updates
	require.Len(t, sent, 2)
	assert.Equal(t, "sync_step1", sent[0].Kind)
	assert.Equal(t, "update", sent[1].Kind)
	info, _ = reg.Room("r")
	assert.Equal(t, 2, info.Pending)

	require.NoError(t, reg.PollOnce(ctx))
	assert.Len(t, mock.SyncCalls()[2].Req.Rooms[0].Updates, 2)
	info, _ = reg.Room("r")
	require.Equal(t, 1, info.Pending)

	require.Error(t, reg.PollOnce(ctx))
	sent = mock.SyncCalls()[3].Req.Rooms[0].Updates
	require.Len(t, sent, 1)
	assert.Equal(t, "compaction", sent[0].Kind)

	// compaction не восстанавливается
	info, _ = reg.Room("r")
	assert.Equal(t, 0, info.Pending)
	assert.Equal(t, int64(2), info.EndCursor)
}

func TestPollOnce_AppliesRemoteUpdatesWithoutEcho(t *testing.T) {
	src := newDoc(t)
	var payload []byte
	src.OnUpdate(func(u document.Update) { payload = u.Payload })
	_, err := src.EditText("remote text", 11)
	require.NoError(t, err)

	mock := &TransportMock{}
	mock.SyncFunc = respond(t, ok(api.RoomResponse{
		Room:      "r",
		EndCursor: 9,
		Awareness: presenceOf(1, 2),
		Updates: []api.Update{
			{Kind: "update", Data: "%%% not base64"},
			codec.EncodeUpdate(models.NewSyncUpdate(models.KindUpdate, payload)),
			{Kind: "bogus", Data: ""},
		},
	}))
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	doc := newDoc(t)
	reg.RegisterRoom("r", doc, awareness.New(1), nil)
	require.NoError(t, reg.PollOnce(context.Background()))

	text, err := doc.Text()
	require.NoError(t, err)
	assert.Equal(t, "remote text", text)

	info, _ := reg.Room("r")
	// только step1: удаленное обновление не вернулось в очередь
	assert.Equal(t, 1, info.Pending)
	assert.Equal(t, int64(9), info.EndCursor)
}

func TestPollOnce_Handshake(t *testing.T) {
	peer := newDoc(t)
	_, err := peer.EditText("peer", 4)
	require.NoError(t, err)

	doc := newDoc(t)
	missing, err := peer.ComputeMissing(doc.EncodeStateVector())
	require.NoError(t, err)

	mock := &TransportMock{}
	mock.SyncFunc = respond(t,
		ok(api.RoomResponse{
			Room:      "r",
			EndCursor: 2,
			Awareness: presenceOf(1, 2),
			Updates: []api.Update{
				codec.EncodeUpdate(models.NewSyncUpdate(models.KindSyncStep1, peer.EncodeStateVector())),
				codec.EncodeUpdate(models.NewSyncUpdate(models.KindSyncStep2, missing)),
				codec.EncodeUpdate(models.NewSyncUpdate(models.KindSyncStep2, missing)),
			},
		}),
		ok(api.RoomResponse{Room: "r", EndCursor: 2, Awareness: presenceOf(1, 2)}),
	)
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	synced := 0
	reg.RegisterRoom("r", doc, awareness.New(1), func() { synced++ })
	require.NoError(t, reg.PollOnce(context.Background()))

	assert.Equal(t, 1, synced)
	text, err := doc.Text()
	require.NoError(t, err)
	assert.Equal(t, "peer", text)

	info, _ := reg.Room("r")
	assert.True(t, info.Synced)

	require.NoError(t, reg.PollOnce(context.Background()))
	sent := mock.SyncCalls()[1].Req.Rooms[0].Updates
	require.Len(t, sent, 2)
	assert.Equal(t, "sync_step1", sent[0].Kind)
	assert.Equal(t, "sync_step2", sent[1].Kind)
	assert.Equal(t, int64(2), mock.SyncCalls()[1].Req.Rooms[0].After)
}

// TestPollOnce_UnregisterMidFlight ответ для удаленной комнаты игнорируется
func TestPollOnce_UnregisterMidFlight(t *testing.T) {
	src := newDoc(t)
	var payload []byte
	src.OnUpdate(func(u document.Update) { payload = u.Payload })
	_, err := src.EditText("late", 4)
	require.NoError(t, err)

	var reg *Registry
	mock := &TransportMock{
		SyncFunc: func(_ context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
			reg.UnregisterRoom("r")
			return &api.SyncResponse{Rooms: []api.RoomResponse{{
				Room:      "r",
				EndCursor: 10,
				Awareness: presenceOf(1, 2),
				Updates:   []api.Update{codec.EncodeUpdate(models.NewSyncUpdate(models.KindUpdate, payload))},
			}}}, nil
		},
	}
	reg = New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	doc := newDoc(t)
	pres := awareness.New(1)
	reg.RegisterRoom("r", doc, pres, nil)

	require.NoError(t, reg.PollOnce(context.Background()))

	_, found := reg.Room("r")
	assert.False(t, found)
	text, err := doc.Text()
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Empty(t, pres.States())
	assert.Equal(t, testConfig.BaseInterval, reg.Interval())

	// слушатели отписаны
	_, err = doc.EditText("after", 5)
	require.NoError(t, err)

	// без комнат запрос не отправляется
	require.NoError(t, reg.PollOnce(context.Background()))
	assert.Len(t, mock.SyncCalls(), 1)
}

func TestPollOnce_LocalAwarenessMirror(t *testing.T) {
	mock := &TransportMock{}
	mock.SyncFunc = respond(t,
		ok(api.RoomResponse{Room: "r", Awareness: presenceOf(1)}),
		ok(api.RoomResponse{Room: "r", Awareness: presenceOf(1)}),
	)
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	pres := awareness.New(1)
	pres.SetLocalState(map[string]any{"name": "ann"})
	reg.RegisterRoom("r", newDoc(t), pres, nil)

	require.NoError(t, reg.PollOnce(context.Background()))
	assert.JSONEq(t, `{"name":"ann"}`, string(mock.SyncCalls()[0].Req.Rooms[0].Awareness))

	pres.SetLocalState(map[string]any{"name": "ann", "cursor": 3})
	require.NoError(t, reg.PollOnce(context.Background()))
	assert.JSONEq(t, `{"name":"ann","cursor":3}`, string(mock.SyncCalls()[1].Req.Rooms[0].Awareness))
}

func TestPollOnce_BatchesRoomsAndCursorMonotonic(t *testing.T) {
	mock := &TransportMock{}
	mock.SyncFunc = respond(t,
		ok(
			api.RoomResponse{Room: "b", EndCursor: 20},
			api.RoomResponse{Room: "a", EndCursor: 5},
			api.RoomResponse{Room: "ghost", EndCursor: 99},
		),
		ok(api.RoomResponse{Room: "b", EndCursor: 7}),
	)
	reg := New(mock, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	reg.RegisterRoom("b", newDoc(t), awareness.New(1), nil)
	reg.RegisterRoom("a", newDoc(t), awareness.New(1), nil, WithCursor(4))

	require.NoError(t, reg.PollOnce(context.Background()))
	req := mock.SyncCalls()[0].Req
	require.Len(t, req.Rooms, 2)
	assert.Equal(t, "a", req.Rooms[0].Room)
	assert.Equal(t, int64(4), req.Rooms[0].After)
	assert.Equal(t, "b", req.Rooms[1].Room)

	require.NoError(t, reg.PollOnce(context.Background()))
	info, _ := reg.Room("b")
	assert.Equal(t, int64(20), info.EndCursor)
}

func TestSnapshot_PendingAndCursor(t *testing.T) {
	reg := New(&TransportMock{}, testConfig, testLogger(), WithManualPolling())
	defer reg.Close()

	pending := []models.SyncUpdate{models.NewSyncUpdate(models.KindUpdate, []byte("offline"))}
	doc := newDoc(t)
	reg.RegisterRoom("r", doc, awareness.New(1), nil, WithCursor(12), WithPending(pending))

	_, err := doc.EditText("new", 3)
	require.NoError(t, err)

	snap, found := reg.Snapshot("r")
	require.True(t, found)
	assert.Equal(t, int64(12), snap.EndCursor)
	require.Len(t, snap.Pending, 2)
	assert.Equal(t, pending[0], snap.Pending[0])
	assert.Equal(t, models.KindUpdate, snap.Pending[1].Kind)

	_, found = reg.Snapshot("missing")
	assert.False(t, found)
}

// TestRegistry_Loop фоновый цикл опрашивает сам и останавливается без комнат
func TestRegistry_Loop(t *testing.T) {
	cfg := Config{
		BaseInterval: 5 * time.Millisecond,
		FastInterval: time.Millisecond,
		MaxInterval:  20 * time.Millisecond,
	}
	mock := &TransportMock{
		SyncFunc: func(_ context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
			rooms := make([]api.RoomResponse, 0, len(req.Rooms))
			for _, r := range req.Rooms {
				rooms = append(rooms, api.RoomResponse{Room: r.Room, EndCursor: r.After + 1})
			}
			return &api.SyncResponse{Rooms: rooms}, nil
		},
	}
	reg := New(mock, cfg, testLogger())
	defer reg.Close()

	reg.RegisterRoom("r", newDoc(t), awareness.New(1), nil)

	require.Eventually(t, func() bool {
		return len(mock.SyncCalls()) >= 3
	}, 2*time.Second, 5*time.Millisecond)

	reg.UnregisterRoom("r")
	require.Eventually(t, func() bool {
		reg.mu.Lock()
		defer reg.mu.Unlock()
		return !reg.running
	}, 2*time.Second, 5*time.Millisecond)

	calls := len(mock.SyncCalls())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, len(mock.SyncCalls()))

	// повторная регистрация снова запускает цикл
	reg.RegisterRoom("r", newDoc(t), awareness.New(1), nil)
	require.Eventually(t, func() bool {
		return len(mock.SyncCalls()) > calls
	}, 2*time.Second, 5*time.Millisecond)
}
