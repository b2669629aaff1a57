package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/docsync/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketRooms    = []byte("rooms")
	bucketMetadata = []byte("metadata")

	keySchemaVersion = []byte("schema_version")
)

// schemaVersion формат RoomState в bucket rooms
const schemaVersion = "1"

// openTimeout ожидание файловой блокировки, если база открыта другим клиентом
const openTimeout = time.Second

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB; второй клиент на той же базе получит ошибку по таймауту
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	store := &Storage{db: db}

	if err := store.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
// и проверяет версию формата сохраненных комнат
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Создаем bucket для состояния комнат
		if _, err := tx.CreateBucketIfNotExists(bucketRooms); err != nil {
			return fmt.Errorf("failed to create rooms bucket: %w", err)
		}

		meta, err := tx.CreateBucketIfNotExists(bucketMetadata)
		if err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		version := meta.Get(keySchemaVersion)
		if version == nil {
			return meta.Put(keySchemaVersion, []byte(schemaVersion))
		}
		if string(version) != schemaVersion {
			return fmt.Errorf("%w: %q", storage.ErrUnsupportedSchema, version)
		}
		return nil
	})
}
