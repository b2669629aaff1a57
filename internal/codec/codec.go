package codec

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/pkg/api"
)

var (
	// ErrMalformedPayload payload не является корректной base64 строкой
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownKind тип записи не поддерживается
	ErrUnknownKind = errors.New("unknown update kind")
)

// Encode кодирует бинарные данные в строку для передачи
func Encode(payload []byte) string {
	return base64.StdEncoding.EncodeToString(payload)
}

// Decode декодирует строку, полученную от Encode
func Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return data, nil
}

// EncodeUpdate конвертирует запись в API формат
func EncodeUpdate(u models.SyncUpdate) api.Update {
	return api.Update{
		Kind: string(u.Kind),
		Data: Encode(u.Payload),
	}
}

// EncodeUpdates конвертирует список записей в API формат.
// Всегда возвращает не-nil слайс, чтобы в JSON был [] а не null.
func EncodeUpdates(updates []models.SyncUpdate) []api.Update {
	out := make([]api.Update, 0, len(updates))
	for _, u := range updates {
		out = append(out, EncodeUpdate(u))
	}
	return out
}

// DecodeUpdate конвертирует API запись в models.SyncUpdate
func DecodeUpdate(u api.Update) (models.SyncUpdate, error) {
	kind := models.UpdateKind(u.Kind)
	if !kind.Valid() {
		return models.SyncUpdate{}, fmt.Errorf("%w: %q", ErrUnknownKind, u.Kind)
	}
	payload, err := Decode(u.Data)
	if err != nil {
		return models.SyncUpdate{}, fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}
	return models.SyncUpdate{Kind: kind, Payload: payload}, nil
}
