package auditor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/Faizan-Faisal/umt-hackathon/internal/events"
	"github.com/Faizan-Faisal/umt-hackathon/internal/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("campusconnect/auditor")

// Recorder turns session and job events into rows in the auth_events table.
type Recorder struct {
	logger *zap.Logger
	db     clickhouse.Conn
}

func NewRecorder(logger *zap.Logger, db clickhouse.Conn) *Recorder {
	return &Recorder{
		logger: logger,
		db:     db,
	}
}

func (r *Recorder) RecordSessionEvent(ctx context.Context, rawData []byte) error {
	var event events.SessionEvent
	if err := json.Unmarshal(rawData, &event); err != nil {
		return fmt.Errorf("parse session event: %w", err)
	}

	actor, role := "", ""
	if event.Session != nil {
		actor = event.Session.Identity
		role = string(event.Session.Role)
	}

	return r.insert(ctx, row{
		id:         event.EventID,
		eventType:  "session." + event.Action,
		origin:     event.Origin,
		actor:      actor,
		role:       role,
		occurredAt: event.OccurredAt,
		payload:    rawData,
	})
}

func (r *Recorder) RecordJobEvent(ctx context.Context, rawData []byte) error {
	var event events.JobEvent
	if err := json.Unmarshal(rawData, &event); err != nil {
		return fmt.Errorf("parse job event: %w", err)
	}

	return r.insert(ctx, row{
		id:         event.EventID,
		eventType:  "job.posted",
		actor:      event.Actor,
		subject:    event.JobID,
		occurredAt: event.OccurredAt,
		payload:    rawData,
	})
}

type row struct {
	id         string
	eventType  string
	origin     string
	actor      string
	role       string
	subject    string
	occurredAt time.Time
	payload    []byte
}

func (r *Recorder) insert(ctx context.Context, rec row) error {
	ctx, span := tracer.Start(ctx, "Recorder.insert")
	defer span.End()

	if rec.id == "" {
		rec.id = uuid.NewString()
	}
	if rec.occurredAt.IsZero() {
		rec.occurredAt = time.Now().UTC()
	}

	span.SetAttributes(telemetry.String("audit.event_type", rec.eventType))

	query := `
		INSERT INTO auth_events (
			id, event_type, origin, actor, role, subject, occurred_at, payload
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	if err := r.db.Exec(ctx, query,
		rec.id,
		rec.eventType,
		rec.origin,
		rec.actor,
		rec.role,
		rec.subject,
		rec.occurredAt,
		string(rec.payload),
	); err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert audit event: %w", err)
	}

	r.logger.Debug("recorded audit event",
		zap.String("event_type", rec.eventType),
		zap.String("actor", rec.actor))
	return nil
}
