package poller

import (
	"encoding/json"
	"sync"

	"github.com/iudanet/docsync/internal/client/queue"
	clientsync "github.com/iudanet/docsync/internal/client/sync"
	"github.com/iudanet/docsync/internal/listener"
	"github.com/iudanet/docsync/internal/models"
)

// room контекст синхронизации одного документа
type room struct {
	doc         Document
	presence    Presence
	queue       *queue.Queue
	reconciler  *clientsync.Reconciler
	docSub      *listener.Subscription
	presenceSub *listener.Subscription
	name        string
	awareness   json.RawMessage
	clientID    uint64
	endCursor   int64
	mu          sync.Mutex
}

// advance сдвигает курсор. Курсор только растет.
func (r *room) advance(cursor int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cursor > r.endCursor {
		r.endCursor = cursor
	}
}

func (r *room) cursor() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.endCursor
}

func (r *room) setAwareness(state json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.awareness = state
}

func (r *room) localAwareness() json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.awareness
}

// detach отписывает слушателей и очищает очередь
func (r *room) detach() {
	r.docSub.Unsubscribe()
	r.presenceSub.Unsubscribe()
	r.queue.Clear()
}

// RoomInfo состояние комнаты для отображения
type RoomInfo struct {
	Name      string
	ClientID  uint64
	EndCursor int64
	Pending   int
	Paused    bool
	Synced    bool
}

// RoomSnapshot то, что нужно сохранить, чтобы продолжить после перезапуска
type RoomSnapshot struct {
	Pending   []models.SyncUpdate
	EndCursor int64
}

// RoomOption настраивает комнату при регистрации
type RoomOption func(*roomOptions)

type roomOptions struct {
	pending []models.SyncUpdate
	cursor  int64
}

// WithCursor начинает опрос с сохраненного курсора
func WithCursor(cursor int64) RoomOption {
	return func(o *roomOptions) {
		o.cursor = cursor
	}
}

// WithPending добавляет неотправленные записи после sync_step1
func WithPending(pending []models.SyncUpdate) RoomOption {
	return func(o *roomOptions) {
		o.pending = pending
	}
}
