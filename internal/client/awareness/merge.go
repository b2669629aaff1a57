package awareness

import (
	"slices"

	"github.com/google/go-cmp/cmp"
)

// Snapshot отображение client id -> состояние присутствия.
// nil значение означает, что участник ушел.
type Snapshot map[uint64]any

// Change описывает изменения присутствия между двумя снимками.
// Списки id отсортированы по возрастанию и не пересекаются.
type Change struct {
	Added   []uint64
	Updated []uint64
	Removed []uint64
}

// Empty сообщает, что изменений нет
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Merge сравнивает локальное зеркало удаленных состояний с полученным снимком.
// Записи с selfID всегда пропускаются. Возвращает изменения и новое зеркало:
// без selfID и без ушедших участников.
func Merge(selfID uint64, local, remote Snapshot) (Change, Snapshot) {
	var change Change
	next := make(Snapshot, len(remote))

	for id, state := range remote {
		if id == selfID || state == nil {
			continue
		}
		next[id] = state

		prev, ok := local[id]
		switch {
		case !ok || prev == nil:
			change.Added = append(change.Added, id)
		case !cmp.Equal(prev, state):
			change.Updated = append(change.Updated, id)
		}
	}

	for id, prev := range local {
		if id == selfID || prev == nil {
			continue
		}
		if _, ok := next[id]; !ok {
			change.Removed = append(change.Removed, id)
		}
	}

	slices.Sort(change.Added)
	slices.Sort(change.Updated)
	slices.Sort(change.Removed)

	return change, next
}
