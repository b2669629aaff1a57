package storage

import "errors"

// Common client storage errors
var (
	// ErrRoomNotFound indicates that no state is saved for the room
	ErrRoomNotFound = errors.New("room state not found")

	// ErrIdentityNotFound indicates that client identity was not created yet
	ErrIdentityNotFound = errors.New("client identity not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")

	// ErrUnsupportedSchema indicates that the database was written by an incompatible client
	ErrUnsupportedSchema = errors.New("unsupported storage schema")
)
