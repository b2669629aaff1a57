// Package poller держит зарегистрированные комнаты и единый цикл опроса.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/iudanet/docsync/internal/client/awareness"
	"github.com/iudanet/docsync/internal/client/queue"
	clientsync "github.com/iudanet/docsync/internal/client/sync"
	"github.com/iudanet/docsync/internal/codec"
	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/pkg/api"
)

// Config параметры опроса
type Config struct {
	// BaseInterval интервал, пока в комнатах никого больше нет
	BaseInterval time.Duration
	// FastInterval интервал, когда в какой-то комнате есть другой участник
	FastInterval time.Duration
	// MaxInterval потолок интервала при ошибках
	MaxInterval time.Duration
	// RequestTimeout таймаут одного запроса, 0 - без таймаута
	RequestTimeout time.Duration
}

// DefaultConfig возвращает параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		BaseInterval:   3 * time.Second,
		FastInterval:   500 * time.Millisecond,
		MaxInterval:    60 * time.Second,
		RequestTimeout: 30 * time.Second,
	}
}

// Registry хранит комнаты и управляет общим циклом опроса.
// Все комнаты отправляются одним запросом; частота и backoff общие.
type Registry struct {
	transport Transport
	merge     clientsync.MergeFunc
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	rooms     map[string]*room
	state     *PollState
	cfg       Config
	wg        sync.WaitGroup
	mu        sync.Mutex
	running   bool
	manual    bool
}

// Option настраивает Registry
type Option func(*Registry)

// WithManualPolling отключает фоновый цикл: итерации выполняет вызывающий
// через PollOnce
func WithManualPolling() Option {
	return func(r *Registry) {
		r.manual = true
	}
}

// New создает реестр. Цикл опроса стартует при регистрации первой комнаты.
func New(transport Transport, cfg Config, logger *slog.Logger, opts ...Option) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		transport: transport,
		merge:     document.MergeUpdates,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		rooms:     make(map[string]*room),
		state:     NewPollState(cfg.BaseInterval, cfg.FastInterval, cfg.MaxInterval),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterRoom регистрирует комнату. Повторная регистрация - no-op, возвращает false.
// При первой регистрации в очередь кладется sync_step1, подписываются
// слушатели документа и присутствия и запускается цикл опроса.
func (r *Registry) RegisterRoom(name string, doc Document, presence Presence, onSync func(), opts ...RoomOption) bool {
	var o roomOptions
	for _, opt := range opts {
		opt(&o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[name]; ok {
		return false
	}

	rm := &room{
		name:       name,
		doc:        doc,
		presence:   presence,
		clientID:   presence.ClientID(),
		endCursor:  o.cursor,
		queue:      queue.New(),
		reconciler: clientsync.NewReconciler(doc, onSync, r.logger.With("room", name)),
	}
	rm.awareness = r.encodeLocalState(name, presence.LocalState())

	rm.queue.Add(models.NewSyncUpdate(models.KindSyncStep1, doc.EncodeStateVector()))
	rm.queue.AddBulk(o.pending)

	rm.docSub = doc.OnUpdate(func(u document.Update) {
		if u.Origin == document.OriginRemote {
			return
		}
		rm.queue.Add(models.NewSyncUpdate(models.KindUpdate, u.Payload))
	})
	rm.presenceSub = presence.OnChange(func(e awareness.Event) {
		if e.Origin != awareness.OriginLocal {
			return
		}
		rm.setAwareness(r.encodeLocalState(name, presence.LocalState()))
	})

	r.rooms[name] = rm
	r.logger.Info("Room registered", "room", name, "client_id", rm.clientID, "after", o.cursor, "pending", len(o.pending))

	r.startLocked()
	return true
}

// UnregisterRoom отписывает слушателей, очищает очередь и удаляет комнату.
// Ответ на уже отправленный запрос для этой комнаты будет проигнорирован.
func (r *Registry) UnregisterRoom(name string) bool {
	r.mu.Lock()
	rm, ok := r.rooms[name]
	if ok {
		delete(r.rooms, name)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	rm.detach()
	r.logger.Info("Room unregistered", "room", name)
	return true
}

// Rooms возвращает имена зарегистрированных комнат
func (r *Registry) Rooms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Room возвращает состояние комнаты
func (r *Registry) Room(name string) (RoomInfo, bool) {
	rm, ok := r.lookup(name)
	if !ok {
		return RoomInfo{}, false
	}
	return RoomInfo{
		Name:      rm.name,
		ClientID:  rm.clientID,
		EndCursor: rm.cursor(),
		Pending:   rm.queue.Size(),
		Paused:    rm.queue.Paused(),
		Synced:    rm.reconciler.Synced(),
	}, true
}

// Snapshot возвращает курсор и неотправленные записи комнаты.
// compaction записи не сохраняются: сервер запросит их заново.
func (r *Registry) Snapshot(name string) (RoomSnapshot, bool) {
	rm, ok := r.lookup(name)
	if !ok {
		return RoomSnapshot{}, false
	}

	pending := make([]models.SyncUpdate, 0)
	for _, u := range rm.queue.Peek() {
		if u.Kind == models.KindUpdate {
			pending = append(pending, u)
		}
	}
	return RoomSnapshot{EndCursor: rm.cursor(), Pending: pending}, true
}

// Interval возвращает интервал до следующей итерации
func (r *Registry) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.Interval()
}

// Failures возвращает количество последовательных неудачных опросов
func (r *Registry) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.Failures()
}

// Close удаляет все комнаты и останавливает цикл опроса
func (r *Registry) Close() {
	for _, name := range r.Rooms() {
		r.UnregisterRoom(name)
	}
	r.cancel()
	r.wg.Wait()
}

func (r *Registry) lookup(name string) (*room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[name]
	return rm, ok
}

func (r *Registry) encodeLocalState(name string, state any) json.RawMessage {
	if state == nil {
		return json.RawMessage("null")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		r.logger.Warn("Failed to encode local awareness", "room", name, "error", err)
		return json.RawMessage("null")
	}
	return raw
}

// startLocked запускает цикл, если он еще не запущен. Вызывается под r.mu.
func (r *Registry) startLocked() {
	if r.manual || r.running || r.ctx.Err() != nil {
		return
	}
	r.running = true
	r.wg.Add(1)
	go r.run()
}

// run цикл опроса: итерация, затем ожидание интервала.
// Завершается, когда комнат не осталось или реестр закрыт.
func (r *Registry) run() {
	defer r.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-r.ctx.Done():
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			return
		case <-timer.C:
		}

		more, err := r.poll(r.ctx)
		if !more {
			r.mu.Lock()
			if len(r.rooms) == 0 {
				r.running = false
				r.mu.Unlock()
				r.logger.Debug("Polling stopped: no rooms")
				return
			}
			r.mu.Unlock()
		}
		if err != nil {
			r.logger.Warn("Poll failed", "error", err, "failures", r.Failures(), "next", r.Interval())
		}
		timer.Reset(r.Interval())
	}
}

// PollOnce выполняет одну итерацию опроса синхронно.
// Без комнат ничего не отправляет.
func (r *Registry) PollOnce(ctx context.Context) error {
	_, err := r.poll(ctx)
	return err
}

type taken struct {
	room    *room
	updates []models.SyncUpdate
}

// poll выполняет одну итерацию. more=false, если комнат нет.
func (r *Registry) poll(ctx context.Context) (bool, error) {
	r.mu.Lock()
	if len(r.rooms) == 0 {
		r.mu.Unlock()
		return false, nil
	}

	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	slices.Sort(names)

	req := api.SyncRequest{Rooms: make([]api.RoomRequest, 0, len(names))}
	batch := make(map[string]taken, len(names))
	for _, name := range names {
		rm := r.rooms[name]
		updates := rm.queue.Get()
		batch[name] = taken{room: rm, updates: updates}
		req.Rooms = append(req.Rooms, api.RoomRequest{
			After:     rm.cursor(),
			Awareness: rm.localAwareness(),
			ClientID:  rm.clientID,
			Room:      name,
			Updates:   codec.EncodeUpdates(updates),
		})
	}
	r.mu.Unlock()

	resp, err := r.send(ctx, req)
	if err != nil {
		for _, t := range batch {
			t.room.queue.Restore(t.updates)
		}
		r.mu.Lock()
		r.state.Failure()
		r.mu.Unlock()
		return true, err
	}

	fast := false
	for _, rr := range resp.Rooms {
		t, sent := batch[rr.Room]
		rm, ok := r.lookup(rr.Room)
		if !sent || !ok || rm != t.room {
			r.logger.Debug("Dropping response for unknown room", "room", rr.Room)
			continue
		}
		if r.handleRoom(rm, rr) {
			fast = true
		}
	}

	r.mu.Lock()
	r.state.Success(fast)
	r.mu.Unlock()
	return true, nil
}

func (r *Registry) send(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
	if r.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.RequestTimeout)
		defer cancel()
	}

	resp, err := r.transport.Sync(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to sync %d rooms: %w", len(req.Rooms), err)
	}
	return resp, nil
}

// handleRoom обрабатывает ответ для одной комнаты.
// Возвращает true, если в комнате есть другой участник.
func (r *Registry) handleRoom(rm *room, rr api.RoomResponse) bool {
	logger := r.logger.With("room", rm.name)

	rm.advance(rr.EndCursor)

	rm.presence.ApplyRemote(decodeAwareness(logger, rr.Awareness))
	active := len(rr.Awareness) > 1
	if active && rm.queue.Paused() {
		logger.Info("Peer detected, resuming queue")
		rm.queue.Resume()
	}

	for _, u := range rr.Updates {
		update, err := codec.DecodeUpdate(u)
		if err != nil {
			logger.Warn("Skipping malformed update", "kind", u.Kind, "error", err)
			continue
		}
		reply, err := rm.reconciler.Process(update)
		if err != nil {
			logger.Warn("Skipping update that failed to apply", "update", update.String(), "error", err)
			continue
		}
		if reply != nil {
			rm.queue.Add(*reply)
		}
	}

	if len(rr.CompactionRequest) > 0 {
		records := make([]models.SyncUpdate, 0, len(rr.CompactionRequest))
		for _, u := range rr.CompactionRequest {
			update, err := codec.DecodeUpdate(u)
			if err != nil {
				logger.Warn("Skipping malformed compaction record", "kind", u.Kind, "error", err)
				continue
			}
			records = append(records, update)
		}
		compacted, err := clientsync.Compact(records, r.merge)
		if err != nil {
			logger.Warn("Failed to compact updates", "count", len(records), "error", err)
		} else {
			logger.Debug("Compacted updates", "count", len(records), "bytes", len(compacted.Payload))
			rm.queue.Add(compacted)
		}
	}

	return active
}

// decodeAwareness переводит снимок сервера в awareness.Snapshot.
// null и неразборчивые состояния становятся tombstone.
func decodeAwareness(logger *slog.Logger, raw map[uint64]json.RawMessage) awareness.Snapshot {
	snapshot := make(awareness.Snapshot, len(raw))
	for id, msg := range raw {
		if len(msg) == 0 {
			snapshot[id] = nil
			continue
		}
		var state any
		if err := json.Unmarshal(msg, &state); err != nil {
			logger.Warn("Skipping malformed awareness state", "client_id", id, "error", err)
			snapshot[id] = nil
			continue
		}
		snapshot[id] = state
	}
	return snapshot
}
