package storage

import (
	"context"

	"github.com/iudanet/docsync/internal/models"
)

//go:generate moq -out roomstorage_mock.go . RoomStorage

// RoomStorage defines interface for persisting room state on client
type RoomStorage interface {
	// SaveRoomState stores or replaces the state of a room
	SaveRoomState(ctx context.Context, state *models.RoomState) error

	// GetRoomState retrieves saved room state
	// Returns ErrRoomNotFound if nothing is saved for the room
	GetRoomState(ctx context.Context, room string) (*models.RoomState, error)

	// ListRooms returns names of all saved rooms in sorted order
	ListRooms(ctx context.Context) ([]string, error)

	// DeleteRoomState removes saved room state
	// Deleting a missing room is not an error
	DeleteRoomState(ctx context.Context, room string) error
}
