package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"enrollhub/internal/document/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded document store used by tests and local
// development. Entries are copied in and out so callers never share memory
// with the store.
type InMemory struct {
	mu        sync.RWMutex
	documents map[id.DocumentID]models.Document
}

func NewInMemory() *InMemory {
	return &InMemory{documents: make(map[id.DocumentID]models.Document)}
}

func (s *InMemory) Create(_ context.Context, document *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[document.ID]; exists {
		return sentinel.ErrConflict
	}
	s.documents[document.ID] = clone(*document)
	return nil
}

func (s *InMemory) UpdateStatus(_ context.Context, docID id.DocumentID, status models.Status, verifiedBy *id.UserID, verifiedAt *time.Time, notes *string, now time.Time) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	document, exists := s.documents[docID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	document.Status = status
	document.VerifiedBy = verifiedBy
	document.VerifiedAt = verifiedAt
	document.Notes = notes
	document.UpdatedAt = now
	s.documents[docID] = clone(document)
	out := clone(document)
	return &out, nil
}

func (s *InMemory) FindByID(_ context.Context, docID id.DocumentID) (*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	document, exists := s.documents[docID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	out := clone(document)
	return &out, nil
}

func (s *InMemory) ListPending(_ context.Context) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, document := range s.documents {
		if document.Status == models.StatusPending {
			d := clone(document)
			out = append(out, &d)
		}
	}
	sortOldestFirst(out)
	return out, nil
}

func (s *InMemory) ListByRegistration(_ context.Context, regID id.RegistrationID) ([]*models.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Document
	for _, document := range s.documents {
		if document.RegistrationID == regID {
			d := clone(document)
			out = append(out, &d)
		}
	}
	sortOldestFirst(out)
	return out, nil
}

// sortOldestFirst orders the verification queue by arrival.
func sortOldestFirst(documents []*models.Document) {
	sort.SliceStable(documents, func(i, j int) bool {
		if documents[i].CreatedAt.Equal(documents[j].CreatedAt) {
			return documents[i].ID.String() < documents[j].ID.String()
		}
		return documents[i].CreatedAt.Before(documents[j].CreatedAt)
	})
}

func clone(document models.Document) models.Document {
	if document.VerifiedBy != nil {
		by := *document.VerifiedBy
		document.VerifiedBy = &by
	}
	if document.VerifiedAt != nil {
		at := *document.VerifiedAt
		document.VerifiedAt = &at
	}
	if document.Notes != nil {
		n := *document.Notes
		document.Notes = &n
	}
	return document
}
