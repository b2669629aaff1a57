package models

import "fmt"

// UpdateKind тип записи синхронизации
type UpdateKind string

// UpdateKind константы для типов записей
const (
	// KindSyncStep1 объявление state vector (что у пира уже есть)
	KindSyncStep1 UpdateKind = "sync_step1"
	// KindSyncStep2 ответ на step1: изменения, которых не хватает пиру
	KindSyncStep2 UpdateKind = "sync_step2"
	// KindUpdate обычное локальное изменение документа
	KindUpdate UpdateKind = "update"
	// KindCompaction несколько update, слитых в одну запись
	KindCompaction UpdateKind = "compaction"
)

// Valid проверяет, что тип записи известен
func (k UpdateKind) Valid() bool {
	switch k {
	case KindSyncStep1, KindSyncStep2, KindUpdate, KindCompaction:
		return true
	default:
		return false
	}
}

// Mergeable сообщает, можно ли сливать записи этого типа при компакции.
// Handshake записи (step1/step2) не сливаются.
func (k UpdateKind) Mergeable() bool {
	return k == KindUpdate || k == KindCompaction
}

// SyncUpdate представляет одну типизированную запись синхронизации.
// Payload непрозрачен: это бинарный формат движка документа.
// После создания запись не изменяется.
type SyncUpdate struct {
	Kind    UpdateKind `json:"kind"`    // Kind тип записи
	Payload []byte     `json:"payload"` // Payload бинарные данные движка документа
}

// NewSyncUpdate создает запись с копией payload
func NewSyncUpdate(kind UpdateKind, payload []byte) SyncUpdate {
	return SyncUpdate{Kind: kind, Payload: clonePayload(payload)}
}

// Clone создает глубокую копию записи
func (u SyncUpdate) Clone() SyncUpdate {
	return SyncUpdate{Kind: u.Kind, Payload: clonePayload(u.Payload)}
}

// String используется в логах: тип и размер, без содержимого
func (u SyncUpdate) String() string {
	return fmt.Sprintf("%s(%d bytes)", u.Kind, len(u.Payload))
}

func clonePayload(p []byte) []byte {
	if p == nil {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
