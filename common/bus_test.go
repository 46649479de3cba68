package common

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelBus_Dispatch(t *testing.T) {
	bus := NewChannelBus(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	typed := make(chan *Event, 4)
	all := make(chan *Event, 4)
	bus.Subscribe(ClaimSettled, func(e *Event) { typed <- e })
	bus.SubscribeAll(func(e *Event) { all <- e })
	go bus.Run(ctx)

	// the second event overflows the buffer and must still arrive
	bus.FireEvent(&Event{T: ClaimCreated, Payload: 1})
	bus.FireEvent(&Event{T: ClaimSettled, Payload: 2})
	bus.FireEvent(&Event{T: ClaimSettled, Payload: 3})

	got := map[interface{}]bool{}
	for i := 0; i < 3; i++ {
		select {
		case e := <-all:
			got[e.Payload] = true
		case <-time.After(5 * time.Second):
			t.Fatal("event not dispatched")
		}
	}
	assert.Len(t, got, 3)

	for i := 0; i < 2; i++ {
		select {
		case e := <-typed:
			assert.Equal(t, ClaimSettled, e.T)
		case <-time.After(5 * time.Second):
			t.Fatal("typed event not dispatched")
		}
	}
	assert.Empty(t, typed)
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "ClaimSettled", ClaimSettled.String())
	assert.Equal(t, "ReputationUpdated", ReputationUpdated.String())
	assert.Equal(t, "Unknown", EventType(100).String())
}
