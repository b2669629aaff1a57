package cli

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/docsync/internal/client/storage"
	"github.com/iudanet/docsync/internal/models"
)

// LoadIdentity возвращает сохраненную идентичность клиента или создает новую
func LoadIdentity(ctx context.Context, meta storage.MetadataStorage) (*models.ClientIdentity, error) {
	identity, err := meta.GetIdentity(ctx)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, storage.ErrIdentityNotFound) {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	identity = &models.ClientIdentity{
		CreatedAt: time.Now().UTC(),
		ClientID:  NewClientID(),
	}
	if err := meta.SaveIdentity(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to save identity: %w", err)
	}
	return identity, nil
}

// NewClientID случайный ненулевой 32-битный id клиента
func NewClientID() uint64 {
	for {
		u := uuid.New()
		if id := uint64(binary.BigEndian.Uint32(u[:4])); id != 0 {
			return id
		}
	}
}
