package models

import "time"

// RoomState сохраненное на клиенте состояние комнаты.
// Позволяет продолжить работу после перезапуска без полной пересинхронизации.
type RoomState struct {
	UpdatedAt time.Time    `json:"updated_at"` // время последнего сохранения
	Room      string       `json:"room"`       // имя комнаты
	Document  []byte       `json:"document"`   // сохраненный документ целиком
	Pending   []SyncUpdate `json:"pending"`    // неотправленные локальные записи
	EndCursor int64        `json:"end_cursor"` // последний подтвержденный курсор
	ClientID  uint64       `json:"client_id"`  // клиент, владевший комнатой
}

// ClientIdentity постоянная идентичность клиента.
// Actor документа генерируется заново при каждом открытии комнаты.
type ClientIdentity struct {
	CreatedAt time.Time `json:"created_at"`
	ClientID  uint64    `json:"client_id"` // id клиента в протоколе синхронизации
}
