package delta

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffWithCursor(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		want    Script
		cursor  int
	}{
		{
			name:    "insert into repeated run ends at cursor",
			oldText: "aaa",
			newText: "aaaa",
			cursor:  2,
			want:    Script{Retain(1), Insert("a", nil)},
		},
		{
			name:    "insert into repeated run at end",
			oldText: "aaa",
			newText: "aaaa",
			cursor:  3,
			want:    Script{Retain(2), Insert("a", nil)},
		},
		{
			name:    "insert into repeated run at start",
			oldText: "aaa",
			newText: "aaaa",
			cursor:  0,
			want:    Script{Insert("a", nil)},
		},
		{
			name:    "pure insertion",
			oldText: "hello world",
			newText: "hello brave world",
			cursor:  12,
			want:    Script{Retain(6), Insert("brave ", nil)},
		},
		{
			name:    "pure deletion",
			oldText: "hello brave world",
			newText: "hello world",
			cursor:  6,
			want:    Script{Retain(6), Delete(6)},
		},
		{
			name:    "backspace in repeated run",
			oldText: "abbbc",
			newText: "abbc",
			cursor:  1,
			want:    Script{Retain(1), Delete(1)},
		},
		{
			name:    "delete in repeated run",
			oldText: "abbbc",
			newText: "abbc",
			cursor:  2,
			want:    Script{Retain(2), Delete(1)},
		},
		{
			name:    "replacement",
			oldText: "the cat sat",
			newText: "the dog sat",
			cursor:  7,
			want:    Script{Retain(4), Delete(3), Insert("dog", nil)},
		},
		{
			name:    "composed input collapses into one character",
			oldText: "nihon ka",
			newText: "nihon か",
			cursor:  7,
			want:    Script{Retain(6), Delete(2), Insert("か", nil)},
		},
		{
			name:    "cursor does not match any placement",
			oldText: "abc",
			newText: "axc",
			cursor:  0,
			want:    Script{Retain(1), Delete(1), Insert("x", nil)},
		},
		{
			name:    "cursor out of range falls back to baseline",
			oldText: "abc",
			newText: "axc",
			cursor:  99,
			want:    Script{Retain(1), Delete(1), Insert("x", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffWithCursor(tt.oldText, tt.newText, tt.cursor)
			assert.Equal(t, tt.want, got)

			applied, err := Apply(tt.oldText, got)
			require.NoError(t, err)
			assert.Equal(t, tt.newText, applied)
		})
	}
}

func TestDiffWithCursor_EqualTextsEmptyScript(t *testing.T) {
	for _, s := range []string{"", "a", "same text", "ёжик"} {
		got := DiffWithCursor(s, s, 1)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestDiffWithCursor_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		want    Script
		cursor  int
	}{
		{
			name:    "insert invalid byte",
			oldText: "abc",
			newText: "ab\xffc",
			cursor:  -1,
			want:    Script{Retain(2), Insert("\xff", nil)},
		},
		{
			name:    "keep invalid byte of old text",
			oldText: "a\xfeb",
			newText: "a\xfebc",
			cursor:  -1,
			want:    Script{Retain(3), Insert("c", nil)},
		},
		{
			name:    "replace invalid bytes",
			oldText: "x\xfe\xffy",
			newText: "x\xff\xfey",
			cursor:  -1,
		},
		{
			name:    "private use runes next to invalid bytes",
			oldText: "\U000F0000\xff",
			newText: "\xff\U000F0000\U000F0001",
			cursor:  1,
		},
		{
			name:    "valid replacement character is not a byte",
			oldText: "\uFFFD",
			newText: "\xff\uFFFD",
			cursor:  1,
			want:    Script{Insert("\xff", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := DiffWithCursor(tt.oldText, tt.newText, tt.cursor)
			if tt.want != nil {
				assert.Equal(t, tt.want, script)
			}

			applied, err := Apply(tt.oldText, script)
			require.NoError(t, err)
			assert.Equal(t, tt.newText, applied)
		})
	}
}

// TestDiffWithCursor_RoundTrip проверяет, что скрипт всегда восстанавливает новый текст
func TestDiffWithCursor_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []string{"a", "a", "b", " ", "ё", "x", "\n", "\xff", "\xd1"}

	randomText := func(maxLen int) string {
		n := rng.Intn(maxLen + 1)
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}

	for i := 0; i < 500; i++ {
		oldText := randomText(12)
		newText := randomText(12)
		cursor := rng.Intn(utf8.RuneCountInString(newText)+3) - 1

		script := DiffWithCursor(oldText, newText, cursor)
		applied, err := Apply(oldText, script)
		require.NoError(t, err, "old=%q new=%q cursor=%d", oldText, newText, cursor)
		require.Equal(t, newText, applied, "old=%q new=%q cursor=%d script=%v", oldText, newText, cursor, script)

		// подсказка курсора не должна ухудшать минимальность
		esc := newByteEscaper(oldText, newText)
		assert.Equal(t, baseline(esc.runes(oldText), esc.runes(newText)).Cost(), script.Cost())
	}
}

func TestScript_Compact(t *testing.T) {
	in := Script{
		Retain(2), Retain(3),
		Insert("a", nil), Insert("b", nil),
		Insert("c", map[string]any{"bold": true}),
		Delete(1), Delete(2),
		{},
		Retain(4),
	}
	want := Script{
		Retain(5),
		Insert("ab", nil),
		Insert("c", map[string]any{"bold": true}),
		Delete(3),
	}
	assert.Equal(t, want, in.Compact())
}

func TestScript_Cost(t *testing.T) {
	s := Script{Retain(10), Delete(2), Insert("ёж", nil)}
	assert.Equal(t, 4, s.Cost())
	assert.Equal(t, 0, Script{}.Cost())
}

func TestOp_Kind(t *testing.T) {
	assert.Equal(t, OpRetain, Retain(1).Kind())
	assert.Equal(t, OpInsert, Insert("x", nil).Kind())
	assert.Equal(t, OpDelete, Delete(1).Kind())
	assert.Equal(t, OpInvalid, Op{}.Kind())
	assert.Equal(t, OpInvalid, Op{Retain: 1, Insert: "x"}.Kind())
}
