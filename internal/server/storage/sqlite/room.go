package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/server/storage"
)

const mergeableKinds = `kind IN ('update', 'compaction')`

// Append adds records authored by clientID to the room log
func (s *Storage) Append(ctx context.Context, room string, clientID uint64, updates []models.SyncUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	last, err := insertRecords(ctx, tx, room, clientID, updates)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return last, nil
}

func insertRecords(ctx context.Context, tx *sql.Tx, room string, clientID uint64, updates []models.SyncUpdate) (int64, error) {
	query := `
		INSERT INTO room_log (room, client_id, kind, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UnixMilli()
	var last int64
	for _, u := range updates {
		payload := u.Payload
		if payload == nil {
			payload = []byte{}
		}
		res, err := stmt.ExecContext(ctx, room, int64(clientID), string(u.Kind), payload, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record: %w", err)
		}
		if last, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to get record cursor: %w", err)
		}
	}
	return last, nil
}

// ListSince returns room records with cursor greater than after
func (s *Storage) ListSince(ctx context.Context, room string, after int64) ([]storage.Record, error) {
	query := `
		SELECT seq, room, client_id, kind, payload, created_at
		FROM room_log
		WHERE room = ? AND seq > ?
		ORDER BY seq
	`
	return s.queryRecords(ctx, query, room, after)
}

// ListMergeable returns update and compaction records with cursor up to upTo
func (s *Storage) ListMergeable(ctx context.Context, room string, upTo int64) ([]storage.Record, error) {
	query := `
		SELECT seq, room, client_id, kind, payload, created_at
		FROM room_log
		WHERE room = ? AND seq <= ? AND ` + mergeableKinds + `
		ORDER BY seq
	`
	return s.queryRecords(ctx, query, room, upTo)
}

func (s *Storage) queryRecords(ctx context.Context, query string, args ...any) ([]storage.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]storage.Record, 0)
	for rows.Next() {
		var (
			rec       storage.Record
			clientID  int64
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&rec.Cursor, &rec.Room, &clientID, &kind, &rec.Update.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.ClientID = uint64(clientID)
		rec.Update.Kind = models.UpdateKind(kind)
		rec.CreatedAt = time.UnixMilli(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// EndCursor returns the greatest cursor of the room
func (s *Storage) EndCursor(ctx context.Context, room string) (int64, error) {
	var cursor sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM room_log WHERE room = ?`, room).Scan(&cursor)
	if err != nil {
		return 0, fmt.Errorf("failed to get end cursor: %w", err)
	}
	return cursor.Int64, nil
}

// CountMergeable returns the number of update and compaction records of the room
func (s *Storage) CountMergeable(ctx context.Context, room string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM room_log WHERE room = ? AND ` + mergeableKinds
	if err := s.db.QueryRowContext(ctx, query, room).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// ReplaceMergeable atomically replaces covered mergeable records with merged
func (s *Storage) ReplaceMergeable(ctx context.Context, room string, clientID uint64, upTo int64, merged models.SyncUpdate) (int64, error) {
	if !merged.Kind.Mergeable() {
		return 0, fmt.Errorf("%w: %s", storage.ErrNotMergeable, merged.Kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM room_log WHERE room = ? AND seq <= ? AND `+mergeableKinds,
		room, upTo,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete compacted records: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if deleted == 0 {
		return 0, storage.ErrNothingToCompact
	}

	cursor, err := insertRecords(ctx, tx, room, clientID, []models.SyncUpdate{merged})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return cursor, nil
}

// PruneHandshakes deletes handshake records created before the given time
func (s *Storage) PruneHandshakes(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM room_log WHERE kind IN ('sync_step1', 'sync_step2') AND created_at < ?`,
		before.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune handshake records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
