package delta

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffWithCursor вычисляет минимальный скрипт, превращающий oldText в newText.
//
// Если изменение допускает несколько равных по стоимости размещений
// (например, вставка в серию одинаковых символов), cursor используется
// для выбора: сначала пробуется размещение, заканчивающееся на cursor,
// затем начинающееся на cursor. Кандидат принимается только если его
// стоимость равна стоимости базового диффа, иначе возвращается базовый.
// Отрицательный cursor отключает подсказку.
//
// Позиции считаются в рунах; невалидный байт UTF-8 считается одной руной
// и переносится во вставки без изменений.
func DiffWithCursor(oldText, newText string, cursor int) Script {
	if oldText == newText {
		return Script{}
	}
	if utf8.ValidString(oldText) && utf8.ValidString(newText) {
		return diffRunes([]rune(oldText), []rune(newText), cursor)
	}

	esc := newByteEscaper(oldText, newText)
	script := diffRunes(esc.runes(oldText), esc.runes(newText), cursor)
	for i := range script {
		if script[i].Insert != "" {
			script[i].Insert = esc.restore(script[i].Insert)
		}
	}
	return script
}

func diffRunes(o, n []rune, cursor int) Script {
	base := baseline(o, n)
	if cursor < 0 || cursor > len(n) {
		return base
	}

	cost := base.Cost()
	if s, ok := endingAt(o, n, cursor); ok && s.Cost() == cost {
		return s
	}
	if s, ok := startingAt(o, n, cursor); ok && s.Cost() == cost {
		return s
	}
	return base
}

// baseline строит скрипт по диффу Myers без таймаута (точный минимум)
func baseline(o, n []rune) Script {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(o, n, false)

	script := make(Script, 0, len(diffs))
	deleted := 0
	inserted := ""

	flush := func() {
		if deleted > 0 {
			script = append(script, Delete(deleted))
		}
		if inserted != "" {
			script = append(script, Insert(inserted, nil))
		}
		deleted = 0
		inserted = ""
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			deleted += len([]rune(d.Text))
		case diffmatchpatch.DiffInsert:
			inserted += d.Text
		case diffmatchpatch.DiffEqual:
			flush()
			script = append(script, Retain(len([]rune(d.Text))))
		}
	}
	flush()

	return script.Compact()
}

// endingAt строит однорегионный скрипт, правка которого заканчивается на cursor
// в новом тексте: всё после cursor сохраняется как общий суффикс.
func endingAt(o, n []rune, cursor int) (Script, bool) {
	tail := n[cursor:]
	if len(tail) > len(o) || !hasSuffix(o, tail) {
		return nil, false
	}
	oldHead := o[:len(o)-len(tail)]
	newHead := n[:cursor]
	p := commonPrefix(oldHead, newHead)

	return region(p, len(oldHead)-p, string(newHead[p:])), true
}

// startingAt строит однорегионный скрипт, правка которого начинается на cursor
func startingAt(o, n []rune, cursor int) (Script, bool) {
	if cursor > len(o) || commonPrefix(o[:cursor], n[:cursor]) != cursor {
		return nil, false
	}
	s := commonSuffix(o[cursor:], n[cursor:])

	return region(cursor, len(o)-cursor-s, string(n[cursor:len(n)-s])), true
}

func region(retain, del int, ins string) Script {
	s := Script{Retain(retain), Delete(del), Insert(ins, nil)}
	return s.Compact()
}

func commonPrefix(a, b []rune) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}

func commonSuffix(a, b []rune) int {
	i := 0
	for i < len(a) && i < len(b) && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return i
}

func hasSuffix(s, suffix []rune) bool {
	off := len(s) - len(suffix)
	for i, r := range suffix {
		if s[off+i] != r {
			return false
		}
	}
	return true
}

// byteEscaper временно заменяет невалидные байты рунами из private use
// области, которых нет ни в одном из текстов
type byteEscaper struct {
	toRune map[byte]rune
	toByte map[rune]byte
}

func newByteEscaper(texts ...string) *byteEscaper {
	used := make(map[rune]struct{})
	var bad []byte
	seen := make(map[byte]struct{})
	for _, s := range texts {
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				if _, ok := seen[s[i]]; !ok {
					seen[s[i]] = struct{}{}
					bad = append(bad, s[i])
				}
			} else {
				used[r] = struct{}{}
			}
			i += size
		}
	}

	e := &byteEscaper{
		toRune: make(map[byte]rune, len(bad)),
		toByte: make(map[rune]byte, len(bad)),
	}
	next := rune(0xF0000)
	for _, b := range bad {
		for {
			if _, ok := used[next]; !ok {
				break
			}
			next++
		}
		e.toRune[b] = next
		e.toByte[next] = b
		next++
	}
	return e
}

func (e *byteEscaper) runes(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			r = e.toRune[s[i]]
		}
		out = append(out, r)
		i += size
	}
	return out
}

func (e *byteEscaper) restore(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := e.toByte[r]; ok {
			b.WriteByte(c)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
