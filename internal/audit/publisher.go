package audit

import (
	"context"
	"log/slog"

	"enrollhub/pkg/requestcontext"
)

// Publisher enriches events with request context and appends them to the
// store. A failed append is logged, never surfaced: audit must not veto the
// operation it records (the outbox table is the durability boundary for
// deployments that need stronger guarantees).
type Publisher struct {
	store  Store
	logger *slog.Logger
}

func NewPublisher(store Store, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, logger: logger}
}

// Emit records one event. Safe to call on a nil publisher so services can
// treat audit as optional wiring.
func (p *Publisher) Emit(ctx context.Context, action Action, subject, detail string) {
	if p == nil || p.store == nil {
		return
	}
	event := Event{
		Action:    action,
		Subject:   subject,
		Detail:    detail,
		ActorID:   requestcontext.ActorID(ctx),
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "audit append failed",
			"action", string(action),
			"subject", subject,
			"error", err.Error(),
		)
	}
}
