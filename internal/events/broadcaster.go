package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Faizan-Faisal/umt-hackathon/internal/errors"
	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
	"github.com/Faizan-Faisal/umt-hackathon/internal/telemetry"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("campusconnect/events")

const (
	SessionChangedSubject = "session.changed"
	JobPostedSubject      = "jobs.posted"
)

// SessionEvent announces a session commit or clear to every interested
// browsing context. Origin identifies the store instance that produced it so
// stores can skip their own broadcasts.
type SessionEvent struct {
	EventID    string          `json:"event_id"`
	Origin     string          `json:"origin"`
	Action     string          `json:"action"` // "commit" or "clear"
	Session    *models.Session `json:"session,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type JobEvent struct {
	EventID    string    `json:"event_id"`
	Actor      string    `json:"actor"`
	JobID      string    `json:"job_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Broadcaster fans session and job events out to all contexts sharing the
// same backing infrastructure. Delivery is best effort with no latency bound.
type Broadcaster interface {
	PublishSessionChange(ctx context.Context, event SessionEvent) error
	SubscribeSessionChanges(handler func(SessionEvent)) (func(), error)
	PublishJobPosted(ctx context.Context, event JobEvent) error
	Close()
}

type natsBroadcaster struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNATSBroadcaster(url string, connTimeout time.Duration, logger *zap.Logger) (Broadcaster, error) {
	opts := []nats.Option{
		nats.Timeout(connTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsBroadcaster{
		conn:   conn,
		logger: logger,
	}, nil
}

func (b *natsBroadcaster) PublishSessionChange(ctx context.Context, event SessionEvent) error {
	_, span := tracer.Start(ctx, "PublishSessionChange")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling session event", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", SessionChangedSubject),
		telemetry.String("session.action", event.Action),
	)

	if err := b.conn.Publish(SessionChangedSubject, data); err != nil {
		span.RecordError(err)
		b.logger.Error("failed to publish session change",
			zap.String("origin", event.Origin),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	b.logger.Debug("published session change",
		zap.String("origin", event.Origin),
		zap.String("action", event.Action))
	return nil
}

func (b *natsBroadcaster) SubscribeSessionChanges(handler func(SessionEvent)) (func(), error) {
	sub, err := b.conn.Subscribe(SessionChangedSubject, func(msg *nats.Msg) {
		var event SessionEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.logger.Warn("dropping malformed session event", zap.Error(err))
			return
		}
		handler(event)
	})
	if err != nil {
		return nil, errors.Internal("subscribing to session changes", err)
	}

	return func() {
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn("failed to unsubscribe from session changes", zap.Error(err))
		}
	}, nil
}

func (b *natsBroadcaster) PublishJobPosted(ctx context.Context, event JobEvent) error {
	_, span := tracer.Start(ctx, "PublishJobPosted")
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job event", err)
	}

	span.SetAttributes(telemetry.String("nats.subject", JobPostedSubject))

	if err := b.conn.Publish(JobPostedSubject, data); err != nil {
		span.RecordError(err)
		b.logger.Error("failed to publish job event",
			zap.String("job_id", event.JobID),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	return nil
}

func (b *natsBroadcaster) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}
