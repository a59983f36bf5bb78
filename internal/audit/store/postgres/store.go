// Package postgres implements the audit store with the transactional outbox
// pattern. Events land in audit_outbox and the worker ships them to Kafka.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"enrollhub/internal/audit"
	"enrollhub/internal/audit/worker"
	txcontext "enrollhub/pkg/platform/tx"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// payload is the JSON shape published to Kafka. Field names match
// audit.Event so consumers deserialize without a mapping layer.
type payload struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Subject   string `json:"subject"`
	Detail    string `json:"detail,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Append writes one event to the outbox. When the context carries a
// transaction the append commits or rolls back with the owning operation.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	body, err := json.Marshal(payload{
		ID:        eventID.String(),
		Action:    string(event.Action),
		Subject:   event.Subject,
		Detail:    event.Detail,
		ActorID:   event.ActorID,
		RequestID: event.RequestID,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}
	const query = `
		INSERT INTO audit_outbox (id, payload, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.execer(ctx).ExecContext(ctx, query, eventID, body, event.Timestamp.UTC()); err != nil {
		return fmt.Errorf("append audit outbox: %w", err)
	}
	return nil
}

// NextBatch implements worker.Source.
func (s *Store) NextBatch(ctx context.Context, limit int) ([]worker.Record, error) {
	const query = `
		SELECT id, payload
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch audit outbox batch: %w", err)
	}
	defer rows.Close()

	var records []worker.Record
	for rows.Next() {
		var record worker.Record
		if err := rows.Scan(&record.ID, &record.Payload); err != nil {
			return nil, fmt.Errorf("scan audit outbox row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// MarkPublished implements worker.Source.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	const query = `
		UPDATE audit_outbox
		SET published_at = NOW()
		WHERE id = ANY($1::uuid[])
	`
	if _, err := s.db.ExecContext(ctx, query, pq.Array(raw)); err != nil {
		return fmt.Errorf("mark audit outbox published: %w", err)
	}
	return nil
}
