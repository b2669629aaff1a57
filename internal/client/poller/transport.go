package poller

import (
	"context"

	"github.com/iudanet/docsync/internal/client/awareness"
	clientsync "github.com/iudanet/docsync/internal/client/sync"
	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/listener"
	"github.com/iudanet/docsync/pkg/api"
)

//go:generate moq -out transport_mock.go . Transport

// Transport канал запрос/ответ до relay сервера
type Transport interface {
	// Sync отправляет один запрос опроса. Не 2xx ответ - ошибка.
	Sync(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error)
}

// Document документ комнаты
type Document interface {
	clientsync.Document

	// EncodeStateVector возвращает то, что уже есть в документе
	EncodeStateVector() []byte

	// OnUpdate подписывает на изменения документа
	OnUpdate(fn func(document.Update)) *listener.Subscription
}

// Presence хранилище присутствия комнаты
type Presence interface {
	// ClientID возвращает id этого клиента
	ClientID() uint64

	// LocalState возвращает локальное состояние (nil - не задано)
	LocalState() any

	// ApplyRemote сливает снимок сервера с зеркалом
	ApplyRemote(snapshot awareness.Snapshot) awareness.Change

	// OnChange подписывает на изменения присутствия
	OnChange(fn func(awareness.Event)) *listener.Subscription
}
