package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/iudanet/docsync/internal/client/awareness"
	"github.com/iudanet/docsync/internal/client/poller"
	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/validation"
)

func (c *Cli) runOpen(ctx context.Context, args string) error {
	name, _ := nextArg(args)
	if name == "" {
		return fmt.Errorf("%w: usage: open <room>", ErrUsage)
	}
	if _, ok := c.rooms[name]; ok {
		return fmt.Errorf("%w: %s", ErrRoomOpen, name)
	}
	_, err := c.open(ctx, name)
	return err
}

// editRoom возвращает открытую комнату; при первой локальной правке
// комната открывается автоматически
func (c *Cli) editRoom(ctx context.Context, name string) (*openRoom, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrUsage)
	}
	if or, ok := c.rooms[name]; ok {
		return or, nil
	}
	return c.open(ctx, name)
}

// open восстанавливает комнату и регистрирует ее в опросе
func (c *Cli) open(ctx context.Context, name string) (*openRoom, error) {
	if err := validation.ValidateRoomName(name); err != nil {
		return nil, err
	}

	doc, opts, err := c.loadRoom(ctx, name)
	if err != nil {
		return nil, err
	}

	presence := awareness.New(c.identity.ClientID)
	onSync := func() {
		c.io.Printf("[%s] synced\n", name)
	}
	if !c.registry.RegisterRoom(name, doc, presence, onSync, opts...) {
		return nil, fmt.Errorf("%w: %s", ErrRoomOpen, name)
	}
	or := &openRoom{doc: doc, presence: presence}
	c.rooms[name] = or

	c.io.Printf("Room %s opened\n", name)
	return or, nil
}

// loadRoom восстанавливает документ и очередь из сохраненного состояния
// или создает новый документ
func (c *Cli) loadRoom(ctx context.Context, name string) (*document.Document, []poller.RoomOption, error) {
	state, err := c.storage.GetRoomState(ctx, name)
	if errors.Is(err, storage.ErrRoomNotFound) {
		doc, err := document.New("")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create document: %w", err)
		}
		return doc, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load room state: %w", err)
	}

	doc, err := document.Load(state.Document, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load document: %w", err)
	}
	c.logger.Info("Room state restored", "room", name, "after", state.EndCursor, "pending", len(state.Pending))

	return doc, []poller.RoomOption{
		poller.WithCursor(state.EndCursor),
		poller.WithPending(state.Pending),
	}, nil
}

func (c *Cli) runClose(ctx context.Context, args string) error {
	name, _ := nextArg(args)
	if _, err := c.room(name); err != nil {
		return err
	}
	if err := c.closeRoom(ctx, name); err != nil {
		return err
	}
	c.io.Printf("Room %s closed\n", name)
	return nil
}

// closeRoom сохраняет состояние комнаты и снимает ее с опроса
func (c *Cli) closeRoom(ctx context.Context, name string) error {
	or := c.rooms[name]

	snap, _ := c.registry.Snapshot(name)
	state := &models.RoomState{
		UpdatedAt: time.Now().UTC(),
		Room:      name,
		Document:  or.doc.Save(),
		Pending:   snap.Pending,
		EndCursor: snap.EndCursor,
		ClientID:  c.identity.ClientID,
	}
	if err := c.storage.SaveRoomState(ctx, state); err != nil {
		return fmt.Errorf("failed to save room %s: %w", name, err)
	}

	c.registry.UnregisterRoom(name)
	delete(c.rooms, name)
	return nil
}

// CloseAll сохраняет и закрывает все открытые комнаты
func (c *Cli) CloseAll(ctx context.Context) error {
	names := make([]string, 0, len(c.rooms))
	for name := range c.rooms {
		names = append(names, name)
	}
	slices.Sort(names)

	var errs []error
	for _, name := range names {
		if err := c.closeRoom(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
