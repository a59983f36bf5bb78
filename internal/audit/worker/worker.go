// Package worker drains the audit outbox into a publish sink. Events are
// written to the outbox in the request path and shipped to Kafka here, so a
// broker outage never blocks an enrollment operation.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Record is one outbox row ready for publishing.
type Record struct {
	ID      uuid.UUID
	Payload []byte
}

// Source yields unpublished records and marks them once shipped.
type Source interface {
	NextBatch(ctx context.Context, limit int) ([]Record, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// Sink delivers a batch to the downstream system (Kafka in production, a
// recorder in tests). Publish must be atomic per record, not per batch.
type Sink interface {
	Publish(ctx context.Context, records []Record) error
}

type Worker struct {
	source    Source
	sink      Sink
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

func New(source Source, sink Sink, logger *slog.Logger) *Worker {
	return &Worker{
		source:    source,
		sink:      sink,
		logger:    logger,
		interval:  time.Second,
		batchSize: 100,
	}
}

// Run drains the outbox until ctx is cancelled. Publish failures back off to
// the next tick; records stay in the outbox until marked.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.DrainOnce(ctx); err != nil {
				w.logger.WarnContext(ctx, "audit outbox drain failed", "error", err.Error())
			}
		}
	}
}

// DrainOnce publishes every unpublished record currently in the source. It
// is the unit Run repeats; exported so tests and shutdown hooks can drain
// deterministically.
func (w *Worker) DrainOnce(ctx context.Context) error {
	for {
		records, err := w.source.NextBatch(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		if err := w.sink.Publish(ctx, records); err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(records))
		for i, record := range records {
			ids[i] = record.ID
		}
		if err := w.source.MarkPublished(ctx, ids); err != nil {
			return err
		}
		if len(records) < w.batchSize {
			return nil
		}
	}
}
