package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded registration store used by tests and local
// development. Entries are copied in and out so callers never share memory
// with the store.
type InMemory struct {
	mu            sync.RWMutex
	registrations map[id.RegistrationID]models.Registration
}

func NewInMemory() *InMemory {
	return &InMemory{registrations: make(map[id.RegistrationID]models.Registration)}
}

func (s *InMemory) Create(_ context.Context, registration *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.registrations[registration.ID]; exists {
		return sentinel.ErrConflict
	}
	s.registrations[registration.ID] = *registration
	return nil
}

func (s *InMemory) UpdateStatus(_ context.Context, regID id.RegistrationID, status models.Status, notes *string, now time.Time) (*models.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	registration, exists := s.registrations[regID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	registration.Status = status
	registration.Notes = copyNotes(notes)
	registration.UpdatedAt = now
	s.registrations[regID] = registration
	out := registration
	return &out, nil
}

func (s *InMemory) FindByID(_ context.Context, regID id.RegistrationID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	registration, exists := s.registrations[regID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	out := registration
	return &out, nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Registration
	for _, registration := range s.registrations {
		if registration.UserID == userID {
			r := registration
			out = append(out, &r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Registration, 0, len(s.registrations))
	for _, registration := range s.registrations {
		r := registration
		out = append(out, &r)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) Exists(_ context.Context, regID id.RegistrationID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.registrations[regID]
	return exists, nil
}

func sortNewestFirst(registrations []*models.Registration) {
	sort.SliceStable(registrations, func(i, j int) bool {
		if registrations[i].CreatedAt.Equal(registrations[j].CreatedAt) {
			return registrations[i].ID.String() < registrations[j].ID.String()
		}
		return registrations[i].CreatedAt.After(registrations[j].CreatedAt)
	})
}

func copyNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := *notes
	return &n
}
