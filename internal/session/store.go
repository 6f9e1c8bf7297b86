package session

import (
	"context"
	"sync"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/cache"
	"github.com/Faizan-Faisal/umt-hackathon/internal/errors"
	"github.com/Faizan-Faisal/umt-hackathon/internal/events"
	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
	"github.com/Faizan-Faisal/umt-hackathon/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("campusconnect/session")

const (
	sessionKey = "campusconnect:session"
	tokenKey   = "campusconnect:token"
)

// Observer is invoked with the new session on every commit, or nil on clear.
type Observer func(*models.Session)

type observerEntry struct {
	id int
	fn Observer
}

// Store is the single source of truth for "who is logged in". State is
// persisted to durable storage and every change is broadcast, so stores in
// other browsing contexts sharing the same storage observe it too.
type Store struct {
	origin      string
	cache       cache.Cache
	broadcaster events.Broadcaster
	logger      *zap.Logger
	ttl         time.Duration

	mu         sync.Mutex
	observers  []observerEntry
	nextID     int
	stopRemote func()
}

func NewStore(c cache.Cache, bc events.Broadcaster, ttl time.Duration, logger *zap.Logger) (*Store, error) {
	s := &Store{
		origin:      uuid.NewString(),
		cache:       c,
		broadcaster: bc,
		logger:      logger,
		ttl:         ttl,
	}

	stop, err := bc.SubscribeSessionChanges(s.handleRemoteChange)
	if err != nil {
		return nil, err
	}
	s.stopRemote = stop

	return s, nil
}

// Load reads any previously persisted session. Absent or corrupt storage
// yields nil; no error is ever surfaced to callers.
func (s *Store) Load(ctx context.Context) *models.Session {
	ctx, span := tracer.Start(ctx, "Store.Load")
	defer span.End()

	var sess models.Session
	if err := s.cache.Get(ctx, sessionKey, &sess); err != nil {
		if err != cache.ErrNotFound {
			span.RecordError(err)
			s.logger.Warn("discarding unreadable session entry", zap.Error(err))
		}
		span.SetAttributes(telemetry.Bool("session.present", false))
		return nil
	}

	var token string
	if err := s.cache.Get(ctx, tokenKey, &token); err == nil {
		sess.AuthToken = token
	}

	span.SetAttributes(telemetry.Bool("session.present", true))
	return &sess
}

// Commit replaces the current session wholesale, persists it, and notifies
// observers here and in other contexts. The last commit wins; no sequencing
// token is defined for overlapping logins.
func (s *Store) Commit(ctx context.Context, sess models.Session) error {
	ctx, span := tracer.Start(ctx, "Store.Commit")
	defer span.End()

	// Token first so no reader ever sees a session without its token.
	if err := s.cache.Set(ctx, tokenKey, sess.AuthToken, s.ttl); err != nil {
		span.RecordError(err)
		return errors.Internal("persisting auth token", err)
	}
	if err := s.cache.Set(ctx, sessionKey, sess, s.ttl); err != nil {
		span.RecordError(err)
		return errors.Internal("persisting session", err)
	}

	s.notify(&sess)
	s.publish(ctx, "commit", &sess)

	s.logger.Info("session committed",
		zap.String("identity", sess.Identity),
		zap.String("role", string(sess.Role)))
	return nil
}

// Clear removes the persisted session and notifies observers with nil.
func (s *Store) Clear(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Store.Clear")
	defer span.End()

	if err := s.cache.Delete(ctx, sessionKey); err != nil {
		span.RecordError(err)
		return errors.Internal("removing session", err)
	}
	if err := s.cache.Delete(ctx, tokenKey); err != nil {
		span.RecordError(err)
		return errors.Internal("removing auth token", err)
	}

	s.notify(nil)
	s.publish(ctx, "clear", nil)

	s.logger.Info("session cleared")
	return nil
}

// Subscribe registers an observer and returns its release func. Callers hold
// the subscription for a component's mounted lifetime and must release it on
// teardown regardless of exit path.
func (s *Store) Subscribe(obs Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observerEntry{id: id, fn: obs})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Close detaches the store from the broadcast stream.
func (s *Store) Close() {
	if s.stopRemote != nil {
		s.stopRemote()
	}
}

// notify invokes observers in subscription order.
func (s *Store) notify(sess *models.Session) {
	s.mu.Lock()
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, e := range observers {
		e.fn(sess)
	}
}

func (s *Store) publish(ctx context.Context, action string, sess *models.Session) {
	event := events.SessionEvent{
		EventID:    uuid.NewString(),
		Origin:     s.origin,
		Action:     action,
		Session:    sess,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.broadcaster.PublishSessionChange(ctx, event); err != nil {
		// Broadcast is best effort; local observers were already notified.
		s.logger.Warn("failed to broadcast session change", zap.Error(err))
	}
}

func (s *Store) handleRemoteChange(event events.SessionEvent) {
	if event.Origin == s.origin {
		return
	}
	if event.Action == "clear" {
		s.notify(nil)
		return
	}
	s.notify(event.Session)
}
