package common

import (
	"context"
	"sync"
)

type Handler func(event *Event)

// ChannelBus queues fired events and dispatches them to subscribed handlers from Run.
// Handlers run on the Run goroutine, never on the goroutine that fired the event.
type ChannelBus struct {
	events   chan *Event
	sl       sync.RWMutex
	handlers map[EventType][]Handler
	all      []Handler
}

func NewChannelBus(size int) *ChannelBus {
	return &ChannelBus{
		events:   make(chan *Event, size),
		handlers: make(map[EventType][]Handler),
	}
}

func (b *ChannelBus) Subscribe(t EventType, h Handler) {
	b.sl.Lock()
	defer b.sl.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

func (b *ChannelBus) SubscribeAll(h Handler) {
	b.sl.Lock()
	defer b.sl.Unlock()
	b.all = append(b.all, h)
}

func (b *ChannelBus) FireEvent(event *Event) {
	select {
	case b.events <- event:
	default:
		//buffer is full, do not block the state machine on slow subscribers
		go func() {
			b.events <- event
		}()
	}
}

func (b *ChannelBus) Run(ctx context.Context) {
	for {
		select {
		case e := <-b.events:
			b.dispatch(e)
		case <-ctx.Done():
			log.Info("Stopped EventBus")
			return
		}
	}
}

func (b *ChannelBus) dispatch(e *Event) {
	b.sl.RLock()
	hs := append(b.handlers[e.T][:0:0], b.handlers[e.T]...)
	hs = append(hs, b.all...)
	b.sl.RUnlock()

	for _, h := range hs {
		h(e)
	}
}

// LogBus writes every event to the log at debug level.
type LogBus struct{}

func (LogBus) FireEvent(event *Event) {
	log.Debugf("event %v: %+v", event.T, event.Payload)
}

func (LogBus) Run(ctx context.Context) {
}
