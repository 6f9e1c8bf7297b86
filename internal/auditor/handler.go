package auditor

import (
	"context"
	"fmt"

	"github.com/Faizan-Faisal/umt-hackathon/internal/events"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const queueGroup = "audit-service"

// Handler binds the recorder to the NATS event stream for the worker's
// lifetime.
type Handler struct {
	logger   *zap.Logger
	nc       *nats.Conn
	recorder *Recorder
	subs     []*nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, recorder *Recorder) *Handler {
	return &Handler{
		logger:   logger,
		nc:       nc,
		recorder: recorder,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sessionSub, err := h.nc.QueueSubscribe(events.SessionChangedSubject, queueGroup, h.handleSessionEvent)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", events.SessionChangedSubject, err)
	}
	h.subs = append(h.subs, sessionSub)

	jobSub, err := h.nc.QueueSubscribe(events.JobPostedSubject, queueGroup, h.handleJobEvent)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", events.JobPostedSubject, err)
	}
	h.subs = append(h.subs, jobSub)

	h.logger.Info("registered NATS subscriptions")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			for _, sub := range h.subs {
				if err := sub.Unsubscribe(); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return nil
}

func (h *Handler) handleSessionEvent(msg *nats.Msg) {
	if err := h.recorder.RecordSessionEvent(context.Background(), msg.Data); err != nil {
		h.logger.Error("failed to record session event",
			zap.Error(err),
			zap.String("subject", msg.Subject))
	}
}

func (h *Handler) handleJobEvent(msg *nats.Msg) {
	if err := h.recorder.RecordJobEvent(context.Background(), msg.Data); err != nil {
		h.logger.Error("failed to record job event",
			zap.Error(err),
			zap.String("subject", msg.Subject))
	}
}
