// Package relay реализует сервер-посредник: журнал записей по комнатам,
// presence с ограниченным временем жизни и запросы компакции.
// Содержимое записей сервер не интерпретирует.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/docsync/internal/codec"
	"github.com/iudanet/docsync/internal/models"
	"github.com/iudanet/docsync/internal/server/metrics"
	"github.com/iudanet/docsync/internal/server/storage"
	"github.com/iudanet/docsync/internal/validation"
	"github.com/iudanet/docsync/pkg/api"
)

var (
	// ErrInvalidRequest запрос нарушает протокол
	ErrInvalidRequest = errors.New("invalid sync request")
)

// Config параметры relay
type Config struct {
	AwarenessTTL        time.Duration
	CompactionTimeout   time.Duration
	HandshakeRetention  time.Duration
	CompactionThreshold int
}

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		AwarenessTTL:        30 * time.Second,
		CompactionTimeout:   time.Minute,
		HandshakeRetention:  5 * time.Minute,
		CompactionThreshold: 50,
	}
}

// pendingCompaction выданный, но еще не выполненный запрос компакции
type pendingCompaction struct {
	requestedAt time.Time
	clientID    uint64
	upTo        int64
}

// Relay обрабатывает sync запросы клиентов
type Relay struct {
	log         storage.RoomLog
	metrics     *metrics.Metrics
	logger      *slog.Logger
	presence    *presenceTable
	compactions map[string]*pendingCompaction
	now         func() time.Time
	cfg         Config
	mu          sync.Mutex
}

// New создает relay поверх журнала комнат
func New(log storage.RoomLog, cfg Config, m *metrics.Metrics, logger *slog.Logger) *Relay {
	return &Relay{
		log:         log,
		metrics:     m,
		logger:      logger,
		presence:    newPresenceTable(cfg.AwarenessTTL),
		compactions: make(map[string]*pendingCompaction),
		now:         time.Now,
		cfg:         cfg,
	}
}

// Ping проверяет доступность хранилища
func (r *Relay) Ping(ctx context.Context) error {
	return r.log.Ping(ctx)
}

// Sync обрабатывает запрос опроса: по каждой комнате сохраняет записи клиента
// и возвращает чужие записи после его курсора, presence и, при необходимости,
// запрос компакции. Комнаты в ответе идут в порядке запроса.
func (r *Relay) Sync(ctx context.Context, req api.SyncRequest) (*api.SyncResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics.ObserveSync(len(req.Rooms))
	now := r.now()

	resp := &api.SyncResponse{Rooms: make([]api.RoomResponse, 0, len(req.Rooms))}
	for _, rr := range req.Rooms {
		roomResp, err := r.syncRoom(ctx, rr, now)
		if err != nil {
			return nil, fmt.Errorf("failed to sync room %s: %w", rr.Room, err)
		}
		resp.Rooms = append(resp.Rooms, roomResp)
	}
	return resp, nil
}

func validate(req api.SyncRequest) error {
	seen := make(map[string]bool, len(req.Rooms))
	for _, rr := range req.Rooms {
		if err := validation.ValidateRoomName(rr.Room); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		if seen[rr.Room] {
			return fmt.Errorf("%w: duplicate room %q", ErrInvalidRequest, rr.Room)
		}
		seen[rr.Room] = true
	}
	return nil
}

func (r *Relay) syncRoom(ctx context.Context, rr api.RoomRequest, now time.Time) (api.RoomResponse, error) {
	logger := r.logger.With("room", rr.Room, "client_id", rr.ClientID)

	incoming := make([]models.SyncUpdate, 0, len(rr.Updates))
	for _, raw := range rr.Updates {
		u, err := codec.DecodeUpdate(raw)
		if err != nil {
			// битая запись пропускается, остальные применяются
			logger.Warn("Skipping malformed record", "kind", raw.Kind, "error", err)
			continue
		}
		if u.Kind == models.KindCompaction {
			if err := r.applyCompaction(ctx, rr.Room, rr.ClientID, u, logger); err != nil {
				return api.RoomResponse{}, err
			}
			continue
		}
		incoming = append(incoming, u)
	}

	if _, err := r.log.Append(ctx, rr.Room, rr.ClientID, incoming); err != nil {
		return api.RoomResponse{}, fmt.Errorf("failed to append records: %w", err)
	}
	for _, u := range incoming {
		r.metrics.RecordsReceived(string(u.Kind), 1)
	}

	records, err := r.log.ListSince(ctx, rr.Room, rr.After)
	if err != nil {
		return api.RoomResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	resp := api.RoomResponse{
		Room:      rr.Room,
		Updates:   make([]api.Update, 0, len(records)),
		EndCursor: rr.After,
	}
	for _, rec := range records {
		resp.EndCursor = max(resp.EndCursor, rec.Cursor)
		if rec.ClientID == rr.ClientID {
			continue
		}
		resp.Updates = append(resp.Updates, codec.EncodeUpdate(rec.Update))
	}
	r.metrics.RecordsSent(len(resp.Updates))

	r.presence.update(rr.Room, rr.ClientID, rr.Awareness, now)
	resp.Awareness = r.presence.snapshot(rr.Room, now)

	request, err := r.maybeRequestCompaction(ctx, rr.Room, rr.ClientID, resp.EndCursor, now, logger)
	if err != nil {
		return api.RoomResponse{}, err
	}
	resp.CompactionRequest = request

	logger.Debug("Room synced",
		"after", rr.After,
		"received", len(incoming),
		"sent", len(resp.Updates),
		"end_cursor", resp.EndCursor,
	)
	return resp, nil
}

// applyCompaction заменяет покрытые записи слитой, если запрос был выдан этому клиенту
func (r *Relay) applyCompaction(ctx context.Context, room string, clientID uint64, merged models.SyncUpdate, logger *slog.Logger) error {
	pc, ok := r.compactions[room]
	if !ok || pc.clientID != clientID {
		// запрос истек или выдан другому клиенту; покрытые записи остаются в журнале
		logger.Debug("Ignoring unrequested compaction")
		r.metrics.Compaction(metrics.CompactionRejected)
		return nil
	}
	delete(r.compactions, room)

	cursor, err := r.log.ReplaceMergeable(ctx, room, clientID, pc.upTo, merged)
	if errors.Is(err, storage.ErrNothingToCompact) {
		r.metrics.Compaction(metrics.CompactionRejected)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply compaction: %w", err)
	}

	r.metrics.Compaction(metrics.CompactionApplied)
	logger.Info("Compaction applied", "up_to", pc.upTo, "cursor", cursor)
	return nil
}

// maybeRequestCompaction выдает запрос компакции, если журнал комнаты
// превысил порог и нет активного запроса
func (r *Relay) maybeRequestCompaction(ctx context.Context, room string, clientID uint64, end int64, now time.Time, logger *slog.Logger) ([]api.Update, error) {
	if pc, ok := r.compactions[room]; ok {
		if now.Sub(pc.requestedAt) <= r.cfg.CompactionTimeout {
			return nil, nil
		}
		// клиент не ответил; запрос будет выдан заново
		delete(r.compactions, room)
		r.metrics.Compaction(metrics.CompactionExpired)
		logger.Info("Compaction request expired", "requested_from", pc.clientID)
	}

	count, err := r.log.CountMergeable(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	if count <= r.cfg.CompactionThreshold {
		return nil, nil
	}

	records, err := r.log.ListMergeable(ctx, room, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list mergeable records: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	request := make([]api.Update, 0, len(records))
	for _, rec := range records {
		request = append(request, codec.EncodeUpdate(rec.Update))
	}
	r.compactions[room] = &pendingCompaction{
		requestedAt: now,
		clientID:    clientID,
		upTo:        records[len(records)-1].Cursor,
	}
	r.metrics.Compaction(metrics.CompactionRequested)
	logger.Info("Compaction requested", "records", len(records))
	return request, nil
}

// Prune удаляет устаревшие presence записи и handshake записи журнала
func (r *Relay) Prune(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.metrics.SetPresenceEntries(r.presence.expire(now))

	n, err := r.log.PruneHandshakes(ctx, now.Add(-r.cfg.HandshakeRetention))
	if err != nil {
		return fmt.Errorf("failed to prune handshakes: %w", err)
	}
	if n > 0 {
		r.metrics.HandshakesPruned(n)
		r.logger.Debug("Pruned handshake records", "count", n)
	}
	return nil
}

// Run периодически вызывает Prune до отмены контекста
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.AwarenessTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Prune(ctx); err != nil {
				r.logger.Error("Prune failed", "error", err)
			}
		}
	}
}
