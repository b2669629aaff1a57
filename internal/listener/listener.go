package listener

import (
	"slices"
	"sync"
)

// Set хранит подписчиков на события типа T
type Set[T any] struct {
	fns    map[uint64]func(T)
	mu     sync.Mutex
	nextID uint64
}

// Subscription handle одной подписки
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Unsubscribe отписывает обработчик. Повторный вызов - no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Subscribe регистрирует обработчик и возвращает handle подписки
func (s *Set[T]) Subscribe(fn func(T)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[uint64]func(T))
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn

	return &Subscription{cancel: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	}}
}

// Emit вызывает всех подписчиков в порядке подписки.
// Обработчики вызываются без удержания блокировки, поэтому могут
// отписываться или подписываться изнутри.
func (s *Set[T]) Emit(event T) {
	s.mu.Lock()
	ids := make([]uint64, 0, len(s.fns))
	for id := range s.fns {
		ids = append(ids, id)
	}
	fns := make([]func(T), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.fns[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Len возвращает количество активных подписок
func (s *Set[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.fns)
}
