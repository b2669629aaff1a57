package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateKind_Valid(t *testing.T) {
	tests := []struct {
		kind UpdateKind
		want bool
	}{
		{KindSyncStep1, true},
		{KindSyncStep2, true},
		{KindUpdate, true},
		{KindCompaction, true},
		{UpdateKind("snapshot"), false},
		{UpdateKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Valid())
		})
	}
}

func TestUpdateKind_Mergeable(t *testing.T) {
	assert.True(t, KindUpdate.Mergeable())
	assert.True(t, KindCompaction.Mergeable())
	assert.False(t, KindSyncStep1.Mergeable())
	assert.False(t, KindSyncStep2.Mergeable())
}

// TestSyncUpdate_Clone проверяет, что клон не разделяет payload с оригиналом
func TestSyncUpdate_Clone(t *testing.T) {
	original := NewSyncUpdate(KindUpdate, []byte{1, 2, 3})
	clone := original.Clone()

	clone.Payload[0] = 42

	assert.Equal(t, byte(1), original.Payload[0])
	assert.Equal(t, original.Kind, clone.Kind)
}

func TestNewSyncUpdate_CopiesPayload(t *testing.T) {
	payload := []byte("abc")
	u := NewSyncUpdate(KindSyncStep2, payload)
	payload[0] = 'x'

	assert.Equal(t, []byte("abc"), u.Payload)
	assert.Nil(t, NewSyncUpdate(KindSyncStep1, nil).Payload)
}

func TestSyncUpdate_String(t *testing.T) {
	u := NewSyncUpdate(KindCompaction, make([]byte, 10))
	assert.Equal(t, "compaction(10 bytes)", u.String())
}
