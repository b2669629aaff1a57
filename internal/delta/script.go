// Package delta строит и применяет скрипты правок retain/insert/delete.
// Позиции и длины считаются в рунах.
package delta

import (
	"errors"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// ErrInvalidScript скрипт не применим к тексту
var ErrInvalidScript = errors.New("invalid edit script")

// OpKind тип операции скрипта
type OpKind int

// OpKind константы
const (
	OpInvalid OpKind = iota
	OpRetain
	OpInsert
	OpDelete
)

// Op представляет одну операцию скрипта.
// Заполнено ровно одно из полей Retain, Insert, Delete.
// Attributes допустимы у insert (форматирование вставки) и у retain
// (изменение форматирования; nil значение снимает атрибут).
type Op struct {
	Attributes map[string]any `json:"attributes,omitempty"`
	Insert     string         `json:"insert,omitempty"`
	Retain     int            `json:"retain,omitempty"`
	Delete     int            `json:"delete,omitempty"`
}

// Script упорядоченная последовательность операций
type Script []Op

// Retain создает операцию retain
func Retain(n int) Op {
	return Op{Retain: n}
}

// Insert создает операцию insert
func Insert(text string, attrs map[string]any) Op {
	return Op{Insert: text, Attributes: attrs}
}

// Delete создает операцию delete
func Delete(n int) Op {
	return Op{Delete: n}
}

// Kind определяет тип операции
func (o Op) Kind() OpKind {
	set := 0
	kind := OpInvalid
	if o.Retain > 0 {
		set++
		kind = OpRetain
	}
	if o.Insert != "" {
		set++
		kind = OpInsert
	}
	if o.Delete > 0 {
		set++
		kind = OpDelete
	}
	if set != 1 || o.Retain < 0 || o.Delete < 0 {
		return OpInvalid
	}
	return kind
}

// Len возвращает длину операции в рунах
func (o Op) Len() int {
	switch o.Kind() {
	case OpRetain:
		return o.Retain
	case OpInsert:
		return utf8.RuneCountInString(o.Insert)
	case OpDelete:
		return o.Delete
	default:
		return 0
	}
}

// Cost возвращает стоимость скрипта: вставленные плюс удаленные руны
func (s Script) Cost() int {
	cost := 0
	for _, op := range s {
		switch op.Kind() {
		case OpInsert, OpDelete:
			cost += op.Len()
		}
	}
	return cost
}

// Compact сливает соседние операции одного типа, выбрасывает пустые
// и отрезает хвостовой retain без атрибутов.
func (s Script) Compact() Script {
	out := make(Script, 0, len(s))
	for _, op := range s {
		kind := op.Kind()
		if kind == OpInvalid {
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Kind() == kind && attrsEqual(last.Attributes, op.Attributes) {
				switch kind {
				case OpRetain:
					last.Retain += op.Retain
					continue
				case OpInsert:
					last.Insert += op.Insert
					continue
				case OpDelete:
					last.Delete += op.Delete
					continue
				}
			}
		}
		out = append(out, op)
	}

	for len(out) > 0 {
		last := out[len(out)-1]
		if last.Kind() != OpRetain || len(last.Attributes) > 0 {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

func attrsEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return cmp.Equal(a, b)
}

func copyAttrs(a map[string]any) map[string]any {
	if len(a) == 0 {
		return nil
	}
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
