package events

import (
	"context"
	"sync"
)

// memoryBroadcaster delivers events synchronously within one process. Used in
// tests and when no NATS server is configured.
type memoryBroadcaster struct {
	mu       sync.Mutex
	handlers map[int]func(SessionEvent)
	nextID   int
	closed   bool
}

func NewMemoryBroadcaster() Broadcaster {
	return &memoryBroadcaster{
		handlers: make(map[int]func(SessionEvent)),
	}
}

func (b *memoryBroadcaster) PublishSessionChange(ctx context.Context, event SessionEvent) error {
	b.mu.Lock()
	handlers := make([]func(SessionEvent), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
	return nil
}

func (b *memoryBroadcaster) SubscribeSessionChanges(handler func(SessionEvent)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}, nil
}

func (b *memoryBroadcaster) PublishJobPosted(ctx context.Context, event JobEvent) error {
	return nil
}

func (b *memoryBroadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[int]func(SessionEvent))
	b.closed = true
}
