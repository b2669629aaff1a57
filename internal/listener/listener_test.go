package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_EmitOrder(t *testing.T) {
	var s Set[int]
	var got []string

	s.Subscribe(func(v int) { got = append(got, "a") })
	s.Subscribe(func(v int) { got = append(got, "b") })
	s.Emit(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestSubscription_Unsubscribe(t *testing.T) {
	var s Set[string]
	calls := 0
	sub := s.Subscribe(func(string) { calls++ })

	s.Emit("x")
	sub.Unsubscribe()
	sub.Unsubscribe()
	s.Emit("y")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, s.Len())
}

func TestSubscription_UnsubscribeFromHandler(t *testing.T) {
	var s Set[int]
	calls := 0
	var sub *Subscription
	sub = s.Subscribe(func(int) {
		calls++
		sub.Unsubscribe()
	})

	s.Emit(1)
	s.Emit(2)
	assert.Equal(t, 1, calls)
}

func TestSubscription_NilSafe(t *testing.T) {
	var sub *Subscription
	assert.NotPanics(t, sub.Unsubscribe)
}
