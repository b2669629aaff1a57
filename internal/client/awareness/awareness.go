package awareness

import (
	"maps"
	"sync"

	"github.com/iudanet/docsync/internal/listener"
)

// Origin источник события присутствия
type Origin string

// Origin константы
const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Event событие изменения присутствия
type Event struct {
	Origin Origin
	Change Change
}

// Awareness хранит локальное состояние присутствия и зеркало удаленных
type Awareness struct {
	local     any
	remote    Snapshot
	listeners listener.Set[Event]
	clientID  uint64
	mu        sync.RWMutex
}

// New создает хранилище присутствия для клиента
func New(clientID uint64) *Awareness {
	return &Awareness{
		clientID: clientID,
		remote:   make(Snapshot),
	}
}

// ClientID возвращает id этого клиента
func (a *Awareness) ClientID() uint64 {
	return a.clientID
}

// LocalState возвращает локальное состояние (nil - не задано)
func (a *Awareness) LocalState() any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.local
}

// SetLocalState задает локальное состояние и уведомляет подписчиков.
// nil означает уход.
func (a *Awareness) SetLocalState(state any) {
	a.mu.Lock()
	prev := a.local
	a.local = state
	a.mu.Unlock()

	var change Change
	switch {
	case prev == nil && state == nil:
		return
	case prev == nil:
		change.Added = []uint64{a.clientID}
	case state == nil:
		change.Removed = []uint64{a.clientID}
	default:
		change.Updated = []uint64{a.clientID}
	}

	a.listeners.Emit(Event{Origin: OriginLocal, Change: change})
}

// ApplyRemote сливает полученный с сервера снимок с зеркалом.
// Событие отправляется только если что-то изменилось.
func (a *Awareness) ApplyRemote(snapshot Snapshot) Change {
	a.mu.Lock()
	change, next := Merge(a.clientID, a.remote, snapshot)
	a.remote = next
	a.mu.Unlock()

	if !change.Empty() {
		a.listeners.Emit(Event{Origin: OriginRemote, Change: change})
	}
	return change
}

// States возвращает все известные состояния, включая собственное
func (a *Awareness) States() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := maps.Clone(a.remote)
	if out == nil {
		out = make(Snapshot)
	}
	if a.local != nil {
		out[a.clientID] = a.local
	}
	return out
}

// OnChange подписывает обработчик на изменения присутствия
func (a *Awareness) OnChange(fn func(Event)) *listener.Subscription {
	return a.listeners.Subscribe(fn)
}
