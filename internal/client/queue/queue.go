package queue

import (
	"sync"

	"github.com/iudanet/docsync/internal/models"
)

// Queue представляет упорядоченный буфер записей одной комнаты
// с управлением потоком (pause/resume).
// Пока очередь на паузе, Get ничего не отдает, но записи копятся.
// Новая очередь создается на паузе.
type Queue struct {
	items  []models.SyncUpdate
	mu     sync.Mutex
	paused bool
}

// New создает новую очередь (на паузе)
func New() *Queue {
	return &Queue{
		items:  make([]models.SyncUpdate, 0),
		paused: true,
	}
}

// Add добавляет запись в конец очереди
func (q *Queue) Add(update models.SyncUpdate) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, update)
}

// AddBulk добавляет записи в конец очереди, сохраняя порядок.
// Пустой список - no-op.
func (q *Queue) AddBulk(updates []models.SyncUpdate) {
	if len(updates) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, updates...)
}

// Get атомарно забирает все записи в порядке FIFO.
// На паузе возвращает пустой список и не трогает очередь.
func (q *Queue) Get() []models.SyncUpdate {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.paused || len(q.items) == 0 {
		return []models.SyncUpdate{}
	}

	drained := q.items
	q.items = make([]models.SyncUpdate, 0)
	return drained
}

// Restore возвращает записи в начало очереди после неудачной отправки.
// Записи compaction отбрасываются: после неудачи их нельзя безопасно
// переиспользовать, сервер запросит компакцию повторно.
func (q *Queue) Restore(updates []models.SyncUpdate) {
	kept := make([]models.SyncUpdate, 0, len(updates))
	for _, u := range updates {
		if u.Kind == models.KindCompaction {
			continue
		}
		kept = append(kept, u)
	}
	if len(kept) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(kept, q.items...)
}

// Pause закрывает очередь для Get
func (q *Queue) Pause() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.paused = true
}

// Resume открывает очередь для Get
func (q *Queue) Resume() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.paused = false
}

// Paused сообщает, на паузе ли очередь
func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.paused
}

// Size возвращает количество записей, включая удерживаемые паузой
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Peek возвращает копию содержимого очереди без извлечения.
// Используется для сохранения неотправленных записей на диск.
func (q *Queue) Peek() []models.SyncUpdate {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.SyncUpdate, len(q.items))
	copy(out, q.items)
	return out
}

// Clear безусловно очищает очередь
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = make([]models.SyncUpdate, 0)
}
