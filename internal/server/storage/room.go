package storage

import (
	"context"
	"time"

	"github.com/iudanet/docsync/internal/models"
)

// Record одна запись журнала комнаты
type Record struct {
	CreatedAt time.Time
	Room      string
	Update    models.SyncUpdate
	Cursor    int64  // позиция в журнале, монотонно растет
	ClientID  uint64 // автор записи
}

//go:generate moq -out roomlog_mock.go . RoomLog

// RoomLog defines interface for the relay room log persistence
type RoomLog interface {
	// Append adds records authored by clientID to the room log
	// Returns cursor of the last appended record or 0 if nothing was appended
	Append(ctx context.Context, room string, clientID uint64, updates []models.SyncUpdate) (int64, error)

	// ListSince returns room records with cursor greater than after, ordered by cursor
	ListSince(ctx context.Context, room string, after int64) ([]Record, error)

	// EndCursor returns the greatest cursor of the room or 0 for an empty room
	EndCursor(ctx context.Context, room string) (int64, error)

	// CountMergeable returns the number of update and compaction records of the room
	CountMergeable(ctx context.Context, room string) (int, error)

	// ListMergeable returns update and compaction records with cursor up to upTo
	ListMergeable(ctx context.Context, room string, upTo int64) ([]Record, error)

	// ReplaceMergeable atomically deletes mergeable records with cursor up to upTo
	// and appends merged as a single record authored by clientID
	// Returns ErrNothingToCompact if no records are covered
	ReplaceMergeable(ctx context.Context, room string, clientID uint64, upTo int64, merged models.SyncUpdate) (int64, error)

	// PruneHandshakes deletes sync_step1 and sync_step2 records created before the given time
	PruneHandshakes(ctx context.Context, before time.Time) (int64, error)

	// Ping checks the storage connection
	Ping(ctx context.Context) error
}
