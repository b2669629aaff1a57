package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/docsync/internal/client/iocli"
	"github.com/iudanet/docsync/internal/client/poller"
	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/client/storage/boltdb"
	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/validation"
	"github.com/iudanet/docsync/pkg/api"
)

// newTestIO возвращает IO, читающий строки input и пишущий в буфер
func newTestIO(input ...string) (*iocli.IOMock, *strings.Builder) {
	out := &strings.Builder{}
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			_, _ = fmt.Fprintln(out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			_, _ = fmt.Fprintf(out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
		ReadInputFunc: func(prompt string) (string, error) {
			if len(input) == 0 {
				return "", io.EOF
			}
			line := input[0]
			input = input[1:]
			return line, nil
		},
		InteractiveFunc: func() bool { return false },
	}, out
}

type testEnv struct {
	cli      *Cli
	registry *poller.Registry
	store    *boltdb.Storage
	out      *strings.Builder
}

func newTestEnv(t *testing.T, input ...string) *testEnv {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transport := &poller.TransportMock{
		SyncFunc: func(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
			return &api.SyncResponse{}, nil
		},
	}
	registry := poller.New(transport, poller.DefaultConfig(), logger, poller.WithManualPolling())
	t.Cleanup(registry.Close)

	mockIO, out := newTestIO(input...)
	c := New(mockIO, registry, store, &models.ClientIdentity{ClientID: 42}, logger)
	c.SetGraphDir(t.TempDir())

	return &testEnv{cli: c, registry: registry, store: store, out: out}
}

func (e *testEnv) exec(t *testing.T, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := e.cli.Execute(context.Background(), line)
		require.NoError(t, err, line)
	}
}

func TestCli_EditCommands(t *testing.T) {
	env := newTestEnv(t)

	env.exec(t,
		"open notes",
		"set notes hello world",
		"insert notes 5 ,",
		"show notes",
		"delete notes 0 6",
		"show notes",
	)

	out := env.out.String()
	assert.Contains(t, out, "Room notes opened")
	assert.Contains(t, out, "hello, world\n")
	assert.Contains(t, out, "\n world\n")
	assert.Equal(t, []string{"notes"}, env.registry.Rooms())

	// каждая правка попала в очередь комнаты
	snap, ok := env.registry.Snapshot("notes")
	require.True(t, ok)
	assert.Len(t, snap.Pending, 3)
}

func TestCli_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		line    string
	}{
		{name: "unknown command", line: "bogus", wantErr: ErrUnknownCommand},
		{name: "room not open", line: "show other", wantErr: ErrRoomClosed},
		{name: "missing room", line: "show", wantErr: ErrUsage},
		{name: "open twice", line: "open notes", wantErr: ErrRoomOpen},
		{name: "open without name", line: "open", wantErr: ErrUsage},
		{name: "open bad name", line: "open a/b", wantErr: validation.ErrInvalidRoomName},
		{name: "set without room", line: "set", wantErr: ErrUsage},
		{name: "set bad name", line: "set a/b text", wantErr: validation.ErrInvalidRoomName},
		{name: "insert bad position", line: "insert notes x abc", wantErr: ErrUsage},
		{name: "insert closed room bad position", line: "insert other x abc", wantErr: ErrUsage},
		{name: "insert without text", line: "insert notes 0", wantErr: ErrUsage},
		{name: "delete zero", line: "delete notes 0 0", wantErr: ErrUsage},
		{name: "presence not json", line: "presence notes {oops", wantErr: ErrUsage},
		{name: "presence empty", line: "presence notes", wantErr: ErrUsage},
	}

	env := newTestEnv(t)
	env.exec(t, "open notes")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit, err := env.cli.Execute(context.Background(), tt.line)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, quit)
		})
	}
}

func TestCli_EditOpensRoom(t *testing.T) {
	env := newTestEnv(t)

	env.exec(t, "set notes hello", "show notes")

	out := env.out.String()
	assert.Contains(t, out, "Room notes opened")
	assert.Contains(t, out, "hello\n")
	assert.Equal(t, []string{"notes"}, env.registry.Rooms())

	snap, ok := env.registry.Snapshot("notes")
	require.True(t, ok)
	require.Len(t, snap.Pending, 1)
	assert.Equal(t, models.KindUpdate, snap.Pending[0].Kind)

	// комната открыта один раз, следующие правки идут в нее же
	env.out.Reset()
	env.exec(t, "insert notes 5 !", "delete notes 0 1", "show notes")
	assert.NotContains(t, env.out.String(), "opened")
	assert.Contains(t, env.out.String(), "ello!\n")

	_, err := env.cli.Execute(context.Background(), "open notes")
	assert.ErrorIs(t, err, ErrRoomOpen)
}

func TestCli_EditRestoresSavedRoom(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.exec(t, "set notes draft", "close notes", "insert notes 5 !", "show notes")
	assert.Contains(t, env.out.String(), "draft!\n")

	snap, ok := env.registry.Snapshot("notes")
	require.True(t, ok)
	assert.Len(t, snap.Pending, 2)

	// незарегистрированная комната не создается при ошибке аргументов
	_, err := env.cli.Execute(ctx, "delete other 0 0")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Equal(t, []string{"notes"}, env.registry.Rooms())
}

func TestCli_EditOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.exec(t, "open notes", "set notes abc")

	_, err := env.cli.Execute(context.Background(), "insert notes 10 x")
	assert.Error(t, err)
	_, err = env.cli.Execute(context.Background(), "delete notes 1 5")
	assert.Error(t, err)

	env.exec(t, "show notes")
	assert.Contains(t, env.out.String(), "abc\n")
}

func TestCli_CloseAndReopen(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.exec(t, "open notes", "set notes draft", "close notes")

	assert.Empty(t, env.registry.Rooms())
	state, err := env.store.GetRoomState(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "notes", state.Room)
	assert.Equal(t, uint64(42), state.ClientID)
	assert.Equal(t, int64(0), state.EndCursor)
	require.Len(t, state.Pending, 1)
	assert.Equal(t, models.KindUpdate, state.Pending[0].Kind)

	env.out.Reset()
	env.exec(t, "open notes", "show notes")
	assert.Contains(t, env.out.String(), "draft\n")

	// неотправленные записи вернулись в очередь
	snap, ok := env.registry.Snapshot("notes")
	require.True(t, ok)
	assert.Equal(t, state.Pending, snap.Pending)
}

func TestCli_Presence(t *testing.T) {
	env := newTestEnv(t)
	env.exec(t, "open notes", `presence notes {"name":"ann"}`, "peers notes")
	assert.Contains(t, env.out.String(), `42 (you): {"name":"ann"}`)

	env.out.Reset()
	env.exec(t, "presence notes null", "peers notes")
	assert.Contains(t, env.out.String(), "No peers")
}

func TestCli_Status(t *testing.T) {
	env := newTestEnv(t)

	env.exec(t, "status")
	assert.Contains(t, env.out.String(), "No open rooms")

	env.out.Reset()
	env.exec(t, "open notes", "set notes x", "status")
	out := env.out.String()
	assert.Contains(t, out, "Client ID: 42")
	assert.Contains(t, out, "Room:       notes")
	assert.Contains(t, out, "Pending:    2")
	assert.Contains(t, out, "State:      handshake")
}

func TestCli_Graph(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "notes.svg")

	env.exec(t, "open notes", "set notes abc", "graph notes "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, env.out.String(), "Graph with 2 change(s)")
}

func TestCli_Run(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, "open notes", "", "set notes hi", "bogus", "quit", "show notes")

	require.NoError(t, env.cli.Run(ctx))

	out := env.out.String()
	assert.Contains(t, out, "Error: unknown command: bogus")
	// после quit ввод не читается
	assert.NotContains(t, out, "hi\n")

	// при выходе комнаты сохранены и сняты с опроса
	assert.Empty(t, env.registry.Rooms())
	rooms, err := env.store.ListRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, rooms)
}

func TestCli_RunEOF(t *testing.T) {
	env := newTestEnv(t, "open a", "open b")

	require.NoError(t, env.cli.Run(context.Background()))

	rooms, err := env.store.ListRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rooms)
}

func TestCli_OpenWithMocks(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockIO, _ := newTestIO()

	t.Run("register rejected", func(t *testing.T) {
		registry := &RegistryMock{
			RegisterRoomFunc: func(name string, doc poller.Document, presence poller.Presence, onSync func(), opts ...poller.RoomOption) bool {
				return false
			},
		}
		roomStorage := &storage.RoomStorageMock{
			GetRoomStateFunc: func(ctx context.Context, room string) (*models.RoomState, error) {
				return nil, storage.ErrRoomNotFound
			},
		}
		c := New(mockIO, registry, roomStorage, &models.ClientIdentity{ClientID: 1}, logger)

		_, err := c.Execute(ctx, "open notes")
		assert.ErrorIs(t, err, ErrRoomOpen)
		require.Len(t, registry.RegisterRoomCalls(), 1)
		assert.Empty(t, registry.RegisterRoomCalls()[0].Opts)
	})

	t.Run("storage failure", func(t *testing.T) {
		registry := &RegistryMock{}
		roomStorage := &storage.RoomStorageMock{
			GetRoomStateFunc: func(ctx context.Context, room string) (*models.RoomState, error) {
				return nil, storage.ErrStorageClosed
			},
		}
		c := New(mockIO, registry, roomStorage, &models.ClientIdentity{ClientID: 1}, logger)

		_, err := c.Execute(ctx, "open notes")
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
		assert.Empty(t, registry.RegisterRoomCalls())
	})

	t.Run("corrupt saved document", func(t *testing.T) {
		registry := &RegistryMock{
			RegisterRoomFunc: func(name string, doc poller.Document, presence poller.Presence, onSync func(), opts ...poller.RoomOption) bool {
				return true
			},
		}
		roomStorage := &storage.RoomStorageMock{
			GetRoomStateFunc: func(ctx context.Context, room string) (*models.RoomState, error) {
				return &models.RoomState{Room: room, EndCursor: 9, Document: []byte("not a document")}, nil
			},
		}
		c := New(mockIO, registry, roomStorage, &models.ClientIdentity{ClientID: 1}, logger)

		_, err := c.Execute(ctx, "open notes")
		assert.Error(t, err)
		assert.Empty(t, registry.RegisterRoomCalls())
	})
}

func TestNextArg(t *testing.T) {
	tests := []struct {
		in, arg, rest string
	}{
		{"", "", ""},
		{"open", "open", ""},
		{"  set notes  hello  world ", "set", "notes  hello  world "},
		{"\tshow notes", "show", "notes"},
	}
	for _, tt := range tests {
		arg, rest := nextArg(tt.in)
		assert.Equal(t, tt.arg, arg, tt.in)
		assert.Equal(t, tt.rest, rest, tt.in)
	}
}
