package session

import (
	"context"
	"testing"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/cache"
	"github.com/Faizan-Faisal/umt-hackathon/internal/cache/memory"
	"github.com/Faizan-Faisal/umt-hackathon/internal/events"
	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, bc events.Broadcaster) *Store {
	t.Helper()
	if bc == nil {
		bc = events.NewMemoryBroadcaster()
	}
	s, err := NewStore(memory.New(cache.DefaultOptions()), bc, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func testSession() models.Session {
	return models.Session{
		Identity:    "7",
		DisplayName: "Ayesha",
		Email:       "ayesha@example.test",
		Role:        models.RoleFinder,
		AuthToken:   "tok-123",
	}
}

func TestLoadWithoutCommit(t *testing.T) {
	s := newTestStore(t, nil)
	if got := s.Load(context.Background()); got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestCommitThenLoad(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	if err := s.Commit(ctx, testSession()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	got := s.Load(ctx)
	if got == nil {
		t.Fatal("expected a session after commit")
	}
	if got.Identity != "7" || got.Role != models.RoleFinder {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.AuthToken != "tok-123" {
		t.Errorf("expected token restored, got %q", got.AuthToken)
	}
}

func TestLoadCorruptEntryYieldsNil(t *testing.T) {
	ctx := context.Background()

	c := memory.New(cache.DefaultOptions())
	s, err := NewStore(c, events.NewMemoryBroadcaster(), time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if err := c.Set(ctx, sessionKey, "{not json", 0); err != nil {
		t.Fatalf("failed to plant corrupt entry: %v", err)
	}
	if got := s.Load(ctx); got != nil {
		t.Errorf("expected corrupt storage to read as nil, got %+v", got)
	}
}

func TestClearRemovesSession(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	if err := s.Commit(ctx, testSession()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := s.Load(ctx); got != nil {
		t.Errorf("expected nil after clear, got %+v", got)
	}
}

func TestObserversNotifiedInSubscriptionOrder(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	var order []int
	s.Subscribe(func(*models.Session) { order = append(order, 1) })
	s.Subscribe(func(*models.Session) { order = append(order, 2) })
	s.Subscribe(func(*models.Session) { order = append(order, 3) })

	if err := s.Commit(ctx, testSession()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected notification order [1 2 3], got %v", order)
	}
}

func TestCommitNotifiesExactlyOnce(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	calls := 0
	s.Subscribe(func(sess *models.Session) {
		calls++
		if sess == nil {
			t.Error("expected non-nil session on commit")
		}
	})

	if err := s.Commit(ctx, testSession()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one notification, got %d", calls)
	}
}

func TestClearNotifiesNil(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	var got *models.Session = &models.Session{Identity: "sentinel"}
	s.Subscribe(func(sess *models.Session) { got = sess })

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil notification on clear, got %+v", got)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	calls := 0
	release := s.Subscribe(func(*models.Session) { calls++ })
	release()

	if err := s.Commit(ctx, testSession()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no notifications after release, got %d", calls)
	}
}

func TestCrossContextBroadcast(t *testing.T) {
	bc := events.NewMemoryBroadcaster()
	a := newTestStore(t, bc)
	b := newTestStore(t, bc)
	ctx := context.Background()

	aCalls, bCalls := 0, 0
	var bSeen *models.Session
	a.Subscribe(func(*models.Session) { aCalls++ })
	b.Subscribe(func(sess *models.Session) {
		bCalls++
		bSeen = sess
	})

	if err := a.Commit(ctx, testSession()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if aCalls != 1 {
		t.Errorf("expected committing store to notify once, got %d", aCalls)
	}
	if bCalls != 1 {
		t.Errorf("expected other context to be notified once, got %d", bCalls)
	}
	if bSeen == nil || bSeen.Identity != "7" {
		t.Errorf("expected broadcast session in other context, got %+v", bSeen)
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if bCalls != 2 || bSeen != nil {
		t.Errorf("expected clear to reach other context with nil, calls=%d seen=%+v", bCalls, bSeen)
	}
}
