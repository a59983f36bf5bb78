package store

import (
	"context"
	"sort"
	"sync"

	"enrollhub/internal/program/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded program store used by tests and local
// development.
type InMemory struct {
	mu       sync.RWMutex
	programs map[id.ProgramID]models.TrainingProgram
}

func NewInMemory() *InMemory {
	return &InMemory{programs: make(map[id.ProgramID]models.TrainingProgram)}
}

func (s *InMemory) Create(_ context.Context, program *models.TrainingProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.programs[program.ID]; exists {
		return sentinel.ErrConflict
	}
	s.programs[program.ID] = *program
	return nil
}

func (s *InMemory) FindByID(_ context.Context, programID id.ProgramID) (*models.TrainingProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	program, exists := s.programs[programID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	out := program
	return &out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.TrainingProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TrainingProgram, 0, len(s.programs))
	for _, program := range s.programs {
		p := program
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Deactivate clears the active flag. The HTTP surface has no retire
// operation; tests use this to exercise active-only listings.
func (s *InMemory) Deactivate(_ context.Context, programID id.ProgramID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	program, exists := s.programs[programID]
	if !exists {
		return sentinel.ErrNotFound
	}
	program.IsActive = false
	s.programs[programID] = program
	return nil
}

func (s *InMemory) Exists(_ context.Context, programID id.ProgramID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.programs[programID]
	return exists, nil
}
