package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/iudanet/docsync/internal/client/awareness"
	"github.com/iudanet/docsync/internal/client/iocli"
	"github.com/iudanet/docsync/internal/client/poller"
	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/models"
)

var (
	// ErrUnknownCommand неизвестная команда
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage неверные аргументы команды
	ErrUsage = errors.New("invalid arguments")
	// ErrRoomOpen комната уже открыта
	ErrRoomOpen = errors.New("room is already open")
	// ErrRoomClosed комната не открыта
	ErrRoomClosed = errors.New("room is not open")
)

//go:generate moq -out registry_mock.go . Registry

// Registry набор комнат, синхронизируемых с relay
type Registry interface {
	RegisterRoom(name string, doc poller.Document, presence poller.Presence, onSync func(), opts ...poller.RoomOption) bool
	UnregisterRoom(name string) bool
	Room(name string) (poller.RoomInfo, bool)
	Rooms() []string
	Snapshot(name string) (poller.RoomSnapshot, bool)
}

// openRoom локальная сторона открытой комнаты
type openRoom struct {
	doc      *document.Document
	presence *awareness.Awareness
}

type Cli struct {
	io       iocli.IO
	registry Registry
	storage  storage.RoomStorage
	identity *models.ClientIdentity
	logger   *slog.Logger
	rooms    map[string]*openRoom
	graphDir string
}

func New(out iocli.IO, registry Registry, roomStorage storage.RoomStorage, identity *models.ClientIdentity, logger *slog.Logger) *Cli {
	return &Cli{
		io:       out,
		registry: registry,
		storage:  roomStorage,
		identity: identity,
		logger:   logger,
		rooms:    make(map[string]*openRoom),
		graphDir: os.TempDir(),
	}
}

// SetGraphDir задает каталог для файлов команды graph
func (c *Cli) SetGraphDir(dir string) {
	c.graphDir = dir
}

// Run читает команды до quit, конца ввода или отмены контекста.
// Перед выходом состояние всех открытых комнат сохраняется.
func (c *Cli) Run(ctx context.Context) error {
	defer func() {
		if err := c.CloseAll(context.WithoutCancel(ctx)); err != nil {
			c.io.Printf("Error: %v\n", err)
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := c.io.ReadInput("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		quit, err := c.Execute(ctx, line)
		if err != nil {
			c.io.Printf("Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute выполняет одну строку ввода. quit=true означает выход.
func (c *Cli) Execute(ctx context.Context, line string) (bool, error) {
	command, rest := nextArg(line)
	switch command {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		PrintUsage(c.io)
		return false, nil
	case "open":
		return false, c.runOpen(ctx, rest)
	case "close":
		return false, c.runClose(ctx, rest)
	case "set":
		return false, c.runSet(ctx, rest)
	case "insert":
		return false, c.runInsert(ctx, rest)
	case "delete":
		return false, c.runDelete(ctx, rest)
	case "show":
		return false, c.runShow(rest)
	case "presence":
		return false, c.runPresence(rest)
	case "peers":
		return false, c.runPeers(rest)
	case "status":
		return false, c.runStatus()
	case "graph":
		return false, c.runGraph(rest)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

func (c *Cli) room(name string) (*openRoom, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrUsage)
	}
	or, ok := c.rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomClosed, name)
	}
	return or, nil
}

// nextArg отделяет первое слово; остаток сохраняет внутренние пробелы
func nextArg(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	arg, rest, _ := strings.Cut(s, " ")
	return arg, strings.TrimLeft(rest, " \t")
}

func PrintUsage(out iocli.IO) {
	out.Println("docsync client")
	out.Println()
	out.Println("Commands:")
	out.Println("  open <room>                  Open room and start syncing")
	out.Println("  close <room>                 Save room state and stop syncing")
	out.Println("  set <room> <text>            Replace room text, opening the room if needed")
	out.Println("  insert <room> <pos> <text>   Insert text at position")
	out.Println("  delete <room> <pos> <n>      Delete n characters at position")
	out.Println("  show <room>                  Print room text")
	out.Println("  presence <room> <json>       Publish local presence (null clears it)")
	out.Println("  peers <room>                 List presence of all clients")
	out.Println("  status                       Show rooms and polling state")
	out.Println("  graph <room> [path]          Render change graph to SVG")
	out.Println("  help                         Show this help")
	out.Println("  quit                         Save all rooms and exit")
}
