package store

import (
	"context"
	"sort"
	"sync"

	"enrollhub/internal/schedule/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded session store used by tests and local
// development.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[id.SessionID]models.Session)}
}

func (s *InMemory) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	s.sessions[session.ID] = clone(*session)
	return nil
}

func (s *InMemory) ListByProgram(_ context.Context, programID id.ProgramID) ([]*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Session
	for _, session := range s.sessions {
		if session.ProgramID == programID {
			sess := clone(session)
			out = append(out, &sess)
		}
	}
	// calendar order: date, then start time within the day
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SessionDate.Equal(out[j].SessionDate) {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].SessionDate.Before(out[j].SessionDate)
	})
	return out, nil
}

func clone(session models.Session) models.Session {
	if session.Location != nil {
		l := *session.Location
		session.Location = &l
	}
	if session.Materials != nil {
		m := *session.Materials
		session.Materials = &m
	}
	return session
}
