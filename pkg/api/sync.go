package api

import "encoding/json"

// Update представляет одну запись синхронизации на проводе
type Update struct {
	Kind string `json:"kind"` // тип записи: sync_step1, sync_step2, update, compaction
	Data string `json:"data"` // payload в base64
}

// RoomRequest представляет часть запроса, относящуюся к одной комнате
type RoomRequest struct {
	Awareness json.RawMessage `json:"awareness"` // локальное presence состояние (или null)
	Room      string          `json:"room"`      // имя комнаты
	Updates   []Update        `json:"updates"`   // накопленные записи очереди
	After     int64           `json:"after"`     // последний известный end_cursor
	ClientID  uint64          `json:"client_id"` // идентификатор клиента
}

// SyncRequest представляет запрос опроса: все зарегистрированные комнаты в одном запросе
type SyncRequest struct {
	Rooms []RoomRequest `json:"rooms"`
}

// RoomResponse представляет ответ сервера для одной комнаты
type RoomResponse struct {
	Awareness         map[uint64]json.RawMessage `json:"awareness"`                    // presence всех участников (null = ушел)
	Room              string                     `json:"room"`                         // имя комнаты
	Updates           []Update                   `json:"updates"`                      // записи других клиентов после after
	CompactionRequest []Update                   `json:"compaction_request,omitempty"` // записи, которые сервер просит слить
	EndCursor         int64                      `json:"end_cursor"`                   // новый watermark
}

// SyncResponse представляет ответ сервера на опрос
type SyncResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}
