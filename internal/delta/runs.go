package delta

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Run участок текста с одинаковым форматированием
type Run struct {
	Attributes map[string]any `json:"attributes,omitempty"`
	Text       string         `json:"text"`
}

type cell struct {
	attrs map[string]any
	r     rune
}

// DiffRuns вычисляет скрипт между двумя форматированными текстами.
// Вставки режутся по границам участков нового текста и несут их атрибуты.
// Сохраненные символы, у которых изменилось форматирование, выражаются
// через retain с разницей атрибутов (nil снимает атрибут).
func DiffRuns(oldRuns, newRuns []Run, cursor int) Script {
	oldCells := expand(oldRuns)
	newCells := expand(newRuns)

	plain := DiffWithCursor(joinRuns(oldRuns), joinRuns(newRuns), cursor)

	out := make(Script, 0, len(plain))
	oi, ni := 0, 0

	retain := func(count int) {
		for count > 0 {
			diff := attrDiff(oldCells[oi].attrs, newCells[ni].attrs)
			n := 1
			for n < count && cmp.Equal(diff, attrDiff(oldCells[oi+n].attrs, newCells[ni+n].attrs)) {
				n++
			}
			out = append(out, Op{Retain: n, Attributes: diff})
			oi += n
			ni += n
			count -= n
		}
	}

	for _, op := range plain {
		switch op.Kind() {
		case OpRetain:
			retain(op.Retain)
		case OpDelete:
			out = append(out, op)
			oi += op.Delete
		case OpInsert:
			end := ni + op.Len()
			for ni < end {
				start := ni
				for ni < end && attrsEqual(newCells[ni].attrs, newCells[start].attrs) {
					ni++
				}
				out = append(out, Insert(cellText(newCells[start:ni]), copyAttrs(newCells[start].attrs)))
			}
		}
	}
	retain(len(oldCells) - oi)

	return out.Compact()
}

// ApplyRuns применяет скрипт к форматированному тексту.
// Результат нормализован (см. NormalizeRuns).
func ApplyRuns(runs []Run, script Script) ([]Run, error) {
	src := expand(runs)
	out := make([]cell, 0, len(src))

	pos := 0
	for i, op := range script {
		switch op.Kind() {
		case OpRetain:
			if pos+op.Retain > len(src) {
				return nil, fmt.Errorf("%w: op %d retains %d past end (%d/%d)", ErrInvalidScript, i, op.Retain, pos, len(src))
			}
			for _, c := range src[pos : pos+op.Retain] {
				out = append(out, cell{r: c.r, attrs: mergeAttrs(c.attrs, op.Attributes)})
			}
			pos += op.Retain
		case OpInsert:
			attrs := copyAttrs(op.Attributes)
			for _, r := range op.Insert {
				out = append(out, cell{r: r, attrs: attrs})
			}
		case OpDelete:
			if pos+op.Delete > len(src) {
				return nil, fmt.Errorf("%w: op %d deletes %d past end (%d/%d)", ErrInvalidScript, i, op.Delete, pos, len(src))
			}
			pos += op.Delete
		default:
			return nil, fmt.Errorf("%w: op %d is malformed", ErrInvalidScript, i)
		}
	}
	out = append(out, src[pos:]...)

	return collapse(out), nil
}

// NormalizeRuns склеивает соседние участки с одинаковыми атрибутами
// и выбрасывает пустые
func NormalizeRuns(runs []Run) []Run {
	return collapse(expand(runs))
}

func expand(runs []Run) []cell {
	var cells []cell
	for _, run := range runs {
		attrs := copyAttrs(run.Attributes)
		for _, r := range run.Text {
			cells = append(cells, cell{r: r, attrs: attrs})
		}
	}
	return cells
}

func collapse(cells []cell) []Run {
	runs := make([]Run, 0)
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && attrsEqual(cells[i].attrs, cells[j].attrs) {
			j++
		}
		runs = append(runs, Run{Text: cellText(cells[i:j]), Attributes: copyAttrs(cells[i].attrs)})
		i = j
	}
	return runs
}

func cellText(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteRune(c.r)
	}
	return b.String()
}

func joinRuns(runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// attrDiff возвращает атрибуты, которые нужно применить к from, чтобы получить to
func attrDiff(from, to map[string]any) map[string]any {
	var diff map[string]any
	for k, v := range to {
		if old, ok := from[k]; ok && cmp.Equal(old, v) {
			continue
		}
		if diff == nil {
			diff = make(map[string]any)
		}
		diff[k] = v
	}
	for k := range from {
		if _, ok := to[k]; ok {
			continue
		}
		if diff == nil {
			diff = make(map[string]any)
		}
		diff[k] = nil
	}
	return diff
}

func mergeAttrs(base, change map[string]any) map[string]any {
	if len(change) == 0 {
		return base
	}
	out := make(map[string]any, len(base)+len(change))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range change {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
