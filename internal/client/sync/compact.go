package sync

import (
	"fmt"

	"github.com/iudanet/docsync/internal/models"
)

// MergeFunc сливает бинарные обновления движка в одно
type MergeFunc func(payloads [][]byte) ([]byte, error)

// Compact сливает update и compaction записи в одну compaction запись.
// Handshake записи пропускаются. Если сливать нечего, возвращается
// compaction с пустым payload.
func Compact(records []models.SyncUpdate, merge MergeFunc) (models.SyncUpdate, error) {
	payloads := make([][]byte, 0, len(records))
	for _, r := range records {
		if !r.Kind.Mergeable() {
			continue
		}
		payloads = append(payloads, r.Payload)
	}

	if len(payloads) == 0 {
		return models.SyncUpdate{Kind: models.KindCompaction, Payload: []byte{}}, nil
	}

	merged, err := merge(payloads)
	if err != nil {
		return models.SyncUpdate{}, fmt.Errorf("failed to merge %d updates: %w", len(payloads), err)
	}
	if merged == nil {
		merged = []byte{}
	}
	return models.SyncUpdate{Kind: models.KindCompaction, Payload: merged}, nil
}
