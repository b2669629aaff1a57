package storage

import (
	"context"

	"github.com/iudanet/docsync/internal/models"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveIdentity saves the client identity
	SaveIdentity(ctx context.Context, identity *models.ClientIdentity) error

	// GetIdentity retrieves the client identity
	// Returns ErrIdentityNotFound if it was never saved
	GetIdentity(ctx context.Context) (*models.ClientIdentity, error)
}
