package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/models"
)

// SaveRoomState stores or replaces room state in BoltDB
func (s *Storage) SaveRoomState(ctx context.Context, state *models.RoomState) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем состояние в JSON
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal room state: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return fmt.Errorf("rooms bucket not found")
		}

		// Сохраняем по имени комнаты
		if err := bucket.Put([]byte(state.Room), data); err != nil {
			return fmt.Errorf("failed to save room state: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRoomState retrieves room state by room name
func (s *Storage) GetRoomState(ctx context.Context, room string) (*models.RoomState, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var state *models.RoomState

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return storage.ErrRoomNotFound
		}

		data := bucket.Get([]byte(room))
		if data == nil {
			return storage.ErrRoomNotFound
		}

		// Десериализуем
		state = &models.RoomState{}
		if err := json.Unmarshal(data, state); err != nil {
			return fmt.Errorf("failed to unmarshal room state: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return state, nil
}

// ListRooms returns names of all saved rooms
func (s *Storage) ListRooms(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	rooms := make([]string, 0)

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			// Нет bucket - возвращаем пустой список
			return nil
		}

		// Ключи bbolt отсортированы побайтно
		return bucket.ForEach(func(k, _ []byte) error {
			rooms = append(rooms, string(k))
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

// DeleteRoomState removes saved room state
func (s *Storage) DeleteRoomState(ctx context.Context, room string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRooms)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(room))
	})

	if err != nil {
		return fmt.Errorf("failed to delete room state: %w", err)
	}

	return nil
}
