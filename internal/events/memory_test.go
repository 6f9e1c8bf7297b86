package events

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewMemoryBroadcaster()

	var got []string
	for _, name := range []string{"a", "b"} {
		name := name
		if _, err := b.SubscribeSessionChanges(func(SessionEvent) {
			got = append(got, name)
		}); err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
	}

	event := SessionEvent{EventID: "e1", Origin: "o1", Action: "commit", OccurredAt: time.Now()}
	if err := b.PublishSessionChange(context.Background(), event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(got) != 2 {
		t.Errorf("expected 2 deliveries, got %d", len(got))
	}
}

func TestMemoryBroadcasterUnsubscribe(t *testing.T) {
	b := NewMemoryBroadcaster()

	calls := 0
	cancel, err := b.SubscribeSessionChanges(func(SessionEvent) { calls++ })
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	if err := b.PublishSessionChange(context.Background(), SessionEvent{EventID: "e1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no deliveries after cancel, got %d", calls)
	}
}

func TestMemoryBroadcasterCloseDropsSubscribers(t *testing.T) {
	b := NewMemoryBroadcaster()

	calls := 0
	if _, err := b.SubscribeSessionChanges(func(SessionEvent) { calls++ }); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	b.Close()

	if err := b.PublishSessionChange(context.Background(), SessionEvent{EventID: "e1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no deliveries after close, got %d", calls)
	}
}
