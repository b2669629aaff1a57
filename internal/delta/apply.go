package delta

import (
	"fmt"
	"strings"
)

// Apply применяет скрипт к тексту. Атрибуты игнорируются.
// Остаток текста после последней операции копируется как неявный retain.
// Позиции в рунах, невалидный байт UTF-8 считается одной руной и
// копируется как есть.
func Apply(text string, script Script) (string, error) {
	// offsets[i] байтовое смещение i-й руны, последний элемент len(text)
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	size := len(offsets) - 1

	var b strings.Builder
	b.Grow(len(text))

	pos := 0
	for i, op := range script {
		switch op.Kind() {
		case OpRetain:
			if pos+op.Retain > size {
				return "", fmt.Errorf("%w: op %d retains %d past end (%d/%d)", ErrInvalidScript, i, op.Retain, pos, size)
			}
			b.WriteString(text[offsets[pos]:offsets[pos+op.Retain]])
			pos += op.Retain
		case OpInsert:
			b.WriteString(op.Insert)
		case OpDelete:
			if pos+op.Delete > size {
				return "", fmt.Errorf("%w: op %d deletes %d past end (%d/%d)", ErrInvalidScript, i, op.Delete, pos, size)
			}
			pos += op.Delete
		default:
			return "", fmt.Errorf("%w: op %d is malformed", ErrInvalidScript, i)
		}
	}
	b.WriteString(text[offsets[pos]:])

	return b.String(), nil
}
