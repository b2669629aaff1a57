package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// RoomNamePattern определяет допустимый формат имени комнаты.
// Латинские буквы, цифры, '_', '-', '.'; без пробелов и '/'.
var RoomNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// MaxRoomNameLen максимальная длина имени комнаты
const MaxRoomNameLen = 64

// ErrInvalidRoomName имя комнаты не подходит
var ErrInvalidRoomName = errors.New("invalid room name")

// ValidateRoomName проверяет, что имя комнаты соответствует требованиям
func ValidateRoomName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: room name cannot be empty", ErrInvalidRoomName)
	}

	if len(name) > MaxRoomNameLen {
		return fmt.Errorf("%w: room name must not exceed %d characters", ErrInvalidRoomName, MaxRoomNameLen)
	}

	if !RoomNamePattern.MatchString(name) {
		return fmt.Errorf("%w: room name can only contain letters, numbers, '_', '-' and '.'", ErrInvalidRoomName)
	}

	return nil
}
