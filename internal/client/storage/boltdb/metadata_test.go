package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/models"
)

// createTestStorage создает временное BoltDB хранилище и инициализирует buckets
func createTestStorage(t *testing.T) (*Storage, func()) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "docsync_test.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		require.NoError(t, store.Close())
		require.NoError(t, os.RemoveAll(tmpDir))
	}

	return store, cleanup
}

func TestSaveAndGetIdentity(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Изначально identity нет
	_, err := store.GetIdentity(ctx)
	assert.ErrorIs(t, err, storage.ErrIdentityNotFound)

	want := &models.ClientIdentity{CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ClientID: 42}
	require.NoError(t, store.SaveIdentity(ctx, want))

	got, err := store.GetIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetIdentity_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// Удаляем bucket metadata напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	_, err = store.GetIdentity(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "metadata bucket not found")

	err = store.SaveIdentity(ctx, &models.ClientIdentity{ClientID: 1})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "metadata bucket not found")
}

func TestIdentity_Closed(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	cleanup()

	_, err := store.GetIdentity(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.SaveIdentity(ctx, &models.ClientIdentity{}), storage.ErrStorageClosed)
}
