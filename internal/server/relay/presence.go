package relay

import (
	"bytes"
	"encoding/json"
	"time"
)

var nullState = json.RawMessage("null")

type presenceEntry struct {
	seen  time.Time
	state json.RawMessage
}

// presenceTable хранит presence клиентов по комнатам.
// Запись живет ttl с последнего запроса клиента; null остается
// tombstone до истечения ttl, чтобы остальные увидели уход.
type presenceTable struct {
	rooms map[string]map[uint64]presenceEntry
	ttl   time.Duration
}

func newPresenceTable(ttl time.Duration) *presenceTable {
	return &presenceTable{
		rooms: make(map[string]map[uint64]presenceEntry),
		ttl:   ttl,
	}
}

func (p *presenceTable) update(room string, clientID uint64, state json.RawMessage, now time.Time) {
	if trimmed := bytes.TrimSpace(state); len(trimmed) == 0 || bytes.Equal(trimmed, nullState) {
		state = nullState
	} else {
		state = append(json.RawMessage(nil), trimmed...)
	}

	entries, ok := p.rooms[room]
	if !ok {
		entries = make(map[uint64]presenceEntry)
		p.rooms[room] = entries
	}
	entries[clientID] = presenceEntry{seen: now, state: state}
}

// snapshot возвращает живые записи комнаты, удаляя устаревшие
func (p *presenceTable) snapshot(room string, now time.Time) map[uint64]json.RawMessage {
	out := make(map[uint64]json.RawMessage)
	entries := p.rooms[room]
	for id, e := range entries {
		if now.Sub(e.seen) > p.ttl {
			delete(entries, id)
			continue
		}
		out[id] = e.state
	}
	if len(entries) == 0 {
		delete(p.rooms, room)
	}
	return out
}

// expire удаляет устаревшие записи во всех комнатах и возвращает число живых
func (p *presenceTable) expire(now time.Time) int {
	live := 0
	for room := range p.rooms {
		live += len(p.snapshot(room, now))
	}
	return live
}
