// Package document оборачивает automerge документ с одним текстовым полем.
package document

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/automerge/automerge-go"
	"github.com/google/uuid"

	"github.com/iudanet/docsync/internal/delta"
	"github.com/iudanet/docsync/internal/listener"
)

// ContentKey ключ текстового поля в корне документа
const ContentKey = "content"

// seedActor фиксированный actor для начального изменения. Все реплики
// создают одинаковое seed изменение (тот же hash), поэтому текстовое поле
// у всех общее и не конфликтует.
const seedActor = "d0c5d0c5d0c5d0c5d0c5d0c5d0c5d0c5"

var (
	// ErrInvalidStateVector state vector не кратен размеру hash
	ErrInvalidStateVector = errors.New("invalid state vector")

	// ErrNoContent в документе нет текстового поля
	ErrNoContent = errors.New("document has no text content")
)

// Origin источник изменения документа
type Origin string

// Origin константы
const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

// Update событие изменения документа
type Update struct {
	Origin  Origin
	Payload []byte
}

// Document потокобезопасная обертка над automerge документом
type Document struct {
	doc       *automerge.Doc
	listeners listener.Set[Update]
	mu        sync.Mutex
}

// New создает пустой документ с текстовым полем.
// actorID - hex строка; пустая строка оставляет случайный actor.
func New(actorID string) (*Document, error) {
	doc := automerge.New()
	if err := doc.SetActorID(seedActor); err != nil {
		return nil, fmt.Errorf("failed to set seed actor: %w", err)
	}
	if err := doc.Path(ContentKey).Set(automerge.NewText("")); err != nil {
		return nil, fmt.Errorf("failed to create text field: %w", err)
	}
	if _, err := doc.Commit("seed", automerge.CommitOptions{Time: &time.Time{}}); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}
	// seed изменение не должно уходить как локальное обновление
	_ = doc.SaveIncremental()

	if err := setActor(doc, actorID); err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Load восстанавливает документ из Save
func Load(raw []byte, actorID string) (*Document, error) {
	doc, err := automerge.Load(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if err := setActor(doc, actorID); err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// NewActorID генерирует случайный actor id (hex)
func NewActorID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func setActor(doc *automerge.Doc, actorID string) error {
	if actorID == "" {
		actorID = NewActorID()
	}
	if err := doc.SetActorID(actorID); err != nil {
		return fmt.Errorf("failed to set actor id: %w", err)
	}
	return nil
}

// ActorID возвращает actor документа
func (d *Document) ActorID() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.doc.ActorID()
}

// Save сериализует документ целиком
func (d *Document) Save() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.doc.Save()
}

// OnUpdate подписывает обработчик на изменения документа
func (d *Document) OnUpdate(fn func(Update)) *listener.Subscription {
	return d.listeners.Subscribe(fn)
}

// ApplyUpdate применяет бинарное обновление с указанным источником.
// Повторное применение тех же изменений ничего не меняет.
func (d *Document) ApplyUpdate(payload []byte, origin Origin) error {
	if len(payload) == 0 {
		return nil
	}

	d.mu.Lock()
	err := d.doc.LoadIncremental(payload)
	if err == nil {
		// чужие изменения не должны попасть в следующее локальное обновление
		_ = d.doc.SaveIncremental()
	}
	d.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}

	d.listeners.Emit(Update{Payload: payload, Origin: origin})
	return nil
}

// EncodeStateVector возвращает heads документа одной строкой байт
func (d *Document) EncodeStateVector() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	return encodeHeads(d.doc.Heads())
}

// ComputeMissing возвращает изменения, которых нет у пира с данным state vector.
// Неизвестные нам heads пира игнорируются: у пира есть что-то, чего нет у нас,
// и это придет в его ответе.
func (d *Document) ComputeMissing(stateVector []byte) ([]byte, error) {
	remote, err := decodeHeads(stateVector)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	all, err := d.doc.Changes()
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}
	have := make(map[automerge.ChangeHash]struct{}, len(all))
	for _, ch := range all {
		have[ch.Hash()] = struct{}{}
	}

	known := make([]automerge.ChangeHash, 0, len(remote))
	for _, h := range remote {
		if _, ok := have[h]; ok {
			known = append(known, h)
		}
	}

	missing, err := d.doc.Changes(known...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute missing changes: %w", err)
	}
	return concatChanges(missing), nil
}

// Text возвращает текущий текст документа
func (d *Document) Text() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.text()
}

func (d *Document) text() (string, error) {
	s, err := d.doc.Path(ContentKey).Text().Get()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	return s, nil
}

// EditText приводит текст документа к newText минимальной правкой.
// cursor - последняя известная позиция каретки (в рунах) или -1.
func (d *Document) EditText(newText string, cursor int) (delta.Script, error) {
	d.mu.Lock()
	oldText, err := d.text()
	d.mu.Unlock()
	if err != nil {
		return nil, err
	}

	script := delta.DiffWithCursor(oldText, newText, cursor)
	if err := d.ApplyScript(script); err != nil {
		return nil, err
	}
	return script, nil
}

// ApplyScript применяет скрипт правки к тексту, коммитит изменение
// и уведомляет подписчиков с OriginLocal
func (d *Document) ApplyScript(script delta.Script) error {
	if len(script) == 0 {
		return nil
	}

	d.mu.Lock()
	payload, err := d.applyScript(script)
	d.mu.Unlock()
	if err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}

	d.listeners.Emit(Update{Payload: payload, Origin: OriginLocal})
	return nil
}

func (d *Document) applyScript(script delta.Script) ([]byte, error) {
	text := d.doc.Path(ContentKey).Text()
	current, err := text.Get()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoContent, err)
	}
	if _, err := delta.Apply(current, script); err != nil {
		return nil, err
	}

	pos := 0
	changed := false
	for _, op := range script {
		switch op.Kind() {
		case delta.OpRetain:
			pos += op.Retain
		case delta.OpDelete:
			if err := text.Delete(pos, op.Delete); err != nil {
				return nil, fmt.Errorf("failed to delete text: %w", err)
			}
			changed = true
		case delta.OpInsert:
			if err := text.Insert(pos, op.Insert); err != nil {
				return nil, fmt.Errorf("failed to insert text: %w", err)
			}
			pos += op.Len()
			changed = true
		}
	}
	if !changed {
		return nil, nil
	}

	if _, err := d.doc.Commit("edit"); err != nil {
		return nil, fmt.Errorf("failed to commit edit: %w", err)
	}
	return d.doc.SaveIncremental(), nil
}

// Heads возвращает hex представление текущих heads
func (d *Document) Heads() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	heads := d.doc.Heads()
	out := make([]string, 0, len(heads))
	for _, h := range heads {
		out = append(out, h.String())
	}
	return out
}

// Revision одно изменение в истории документа
type Revision struct {
	Hash  string
	Actor string
	Text  string
	Deps  []string
	Seq   uint64
}

// History возвращает все изменения документа с текстом на момент каждого
func (d *Document) History() ([]Revision, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	changes, err := d.doc.Changes()
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}

	out := make([]Revision, 0, len(changes))
	for _, ch := range changes {
		rev := Revision{
			Hash:  ch.Hash().String(),
			Actor: ch.ActorID(),
			Seq:   ch.ActorSeq(),
		}
		for _, dep := range ch.Dependencies() {
			rev.Deps = append(rev.Deps, dep.String())
		}

		at, err := d.doc.Fork(ch.Hash())
		if err != nil {
			return nil, fmt.Errorf("failed to checkout %s: %w", rev.Hash, err)
		}
		if s, err := at.Path(ContentKey).Text().Get(); err == nil {
			rev.Text = s
		}
		out = append(out, rev)
	}
	return out, nil
}
