package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/models"
)

const (
	keyIdentity = "identity"
)

// SaveIdentity saves the client identity
func (s *Storage) SaveIdentity(ctx context.Context, identity *models.ClientIdentity) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyIdentity), data); err != nil {
			return fmt.Errorf("failed to save identity: %w", err)
		}

		return nil
	})
}

// GetIdentity retrieves the client identity
func (s *Storage) GetIdentity(ctx context.Context) (*models.ClientIdentity, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var identity *models.ClientIdentity

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(keyIdentity))
		if data == nil {
			return storage.ErrIdentityNotFound
		}

		identity = &models.ClientIdentity{}
		if err := json.Unmarshal(data, identity); err != nil {
			return fmt.Errorf("failed to unmarshal identity: %w", err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return identity, nil
}
