// Package memory provides the in-memory audit store used by tests and by
// deployments without an outbox table. It doubles as a worker source so the
// outbox worker is testable without postgres.
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"enrollhub/internal/audit"
	"enrollhub/internal/audit/worker"
)

type entry struct {
	record    worker.Record
	event     audit.Event
	published bool
}

type Store struct {
	mu      sync.Mutex
	entries []entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry{
		record: worker.Record{ID: uuid.New(), Payload: payload},
		event:  event,
	})
	return nil
}

// Events returns a copy of every appended event, for test assertions.
func (s *Store) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Event, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.event)
	}
	return out
}

// NextBatch implements worker.Source.
func (s *Store) NextBatch(_ context.Context, limit int) ([]worker.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []worker.Record
	for _, e := range s.entries {
		if e.published {
			continue
		}
		out = append(out, e.record)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// MarkPublished implements worker.Source.
func (s *Store) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	for i := range s.entries {
		if set[s.entries[i].record.ID] {
			s.entries[i].published = true
		}
	}
	return nil
}
