package sync

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/iudanet/docsync/internal/document"
	"github.com/iudanet/docsync/internal/models"
)

//go:generate moq -out document_mock.go . Document

// Document операции движка документа, нужные для согласования
type Document interface {
	// ApplyUpdate применяет бинарное обновление с указанным источником
	ApplyUpdate(payload []byte, origin document.Origin) error

	// ComputeMissing возвращает изменения, которых нет у пира с данным state vector
	ComputeMissing(stateVector []byte) ([]byte, error)
}

// ErrUnsupportedKind запись не может быть обработана
var ErrUnsupportedKind = errors.New("unsupported update kind")

// Reconciler обрабатывает входящие записи одной комнаты
type Reconciler struct {
	doc    Document
	onSync func()
	logger *slog.Logger
	synced atomic.Bool
}

// NewReconciler создает обработчик для документа.
// onSync вызывается один раз, при первом sync_step2. Может быть nil.
func NewReconciler(doc Document, onSync func(), logger *slog.Logger) *Reconciler {
	return &Reconciler{
		doc:    doc,
		onSync: onSync,
		logger: logger,
	}
}

// Synced сообщает, был ли получен хотя бы один sync_step2
func (r *Reconciler) Synced() bool {
	return r.synced.Load()
}

// Process применяет запись к документу.
// Для sync_step1 возвращает ответную запись sync_step2, иначе nil.
// Повторная обработка той же записи безопасна: дедупликацию выполняет движок.
func (r *Reconciler) Process(update models.SyncUpdate) (*models.SyncUpdate, error) {
	switch update.Kind {
	case models.KindSyncStep1:
		missing, err := r.doc.ComputeMissing(update.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to compute missing changes: %w", err)
		}
		reply := models.NewSyncUpdate(models.KindSyncStep2, missing)
		r.logger.Debug("Answering sync step 1", "missing_bytes", len(missing))
		return &reply, nil

	case models.KindSyncStep2:
		if err := r.doc.ApplyUpdate(update.Payload, document.OriginRemote); err != nil {
			return nil, fmt.Errorf("failed to apply sync step 2: %w", err)
		}
		if r.synced.CompareAndSwap(false, true) && r.onSync != nil {
			r.onSync()
		}
		return nil, nil

	case models.KindUpdate, models.KindCompaction:
		if err := r.doc.ApplyUpdate(update.Payload, document.OriginRemote); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", update.Kind, err)
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, update.Kind)
	}
}
