package store

import (
	"context"
	"strings"
	"sync"

	"enrollhub/internal/user/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded user store used by tests and local
// development.
type InMemory struct {
	mu      sync.RWMutex
	users   map[id.UserID]models.User
	byEmail map[string]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		users:   make(map[id.UserID]models.User),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, taken := s.byEmail[email]; taken {
		return sentinel.ErrConflict
	}
	if _, exists := s.users[user.ID]; exists {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = clone(*user)
	s.byEmail[email] = user.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.users[userID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	out := clone(user)
	return &out, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, exists := s.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	out := clone(s.users[userID])
	return &out, nil
}

func (s *InMemory) Exists(_ context.Context, userID id.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.users[userID]
	return exists, nil
}

func clone(user models.User) models.User {
	if user.Address != nil {
		a := *user.Address
		user.Address = &a
	}
	return user
}
