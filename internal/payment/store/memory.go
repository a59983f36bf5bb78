package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"enrollhub/internal/payment/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

// InMemory is the mutex-guarded payment store used by tests and local
// development. Entries are copied in and out so callers never share memory
// with the store.
type InMemory struct {
	mu       sync.RWMutex
	payments map[id.PaymentID]models.Payment
}

func NewInMemory() *InMemory {
	return &InMemory{payments: make(map[id.PaymentID]models.Payment)}
}

func (s *InMemory) Create(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[payment.ID]; exists {
		return sentinel.ErrConflict
	}
	s.payments[payment.ID] = clone(*payment)
	return nil
}

func (s *InMemory) UpdateStatus(_ context.Context, payID id.PaymentID, update models.StatusUpdate, now time.Time) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payment, exists := s.payments[payID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	payment.Status = update.Status
	if update.PaymentDate.Set {
		payment.PaymentDate = optionalTime(update.PaymentDate)
	} else if update.DefaultDateToNow && payment.PaymentDate == nil {
		n := now
		payment.PaymentDate = &n
	}
	if update.TransactionID.Set {
		payment.TransactionID = optionalString(update.TransactionID)
	}
	if update.Notes.Set {
		payment.Notes = optionalString(update.Notes)
	}
	payment.UpdatedAt = now
	s.payments[payID] = clone(payment)
	out := clone(payment)
	return &out, nil
}

func (s *InMemory) FindByID(_ context.Context, payID id.PaymentID) (*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payment, exists := s.payments[payID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	out := clone(payment)
	return &out, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Payment, 0, len(s.payments))
	for _, payment := range s.payments {
		p := clone(payment)
		out = append(out, &p)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) ListByRegistration(_ context.Context, regID id.RegistrationID) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Payment
	for _, payment := range s.payments {
		if payment.RegistrationID == regID {
			p := clone(payment)
			out = append(out, &p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(payments []*models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].ID.String() < payments[j].ID.String()
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}

func clone(payment models.Payment) models.Payment {
	if payment.PaymentDate != nil {
		d := *payment.PaymentDate
		payment.PaymentDate = &d
	}
	if payment.TransactionID != nil {
		t := *payment.TransactionID
		payment.TransactionID = &t
	}
	if payment.Notes != nil {
		n := *payment.Notes
		payment.Notes = &n
	}
	return payment
}

func optionalTime(opt id.Optional[time.Time]) *time.Time {
	if !opt.Valid {
		return nil
	}
	t := opt.MustGet()
	return &t
}

func optionalString(opt id.Optional[string]) *string {
	if !opt.Valid {
		return nil
	}
	s := opt.MustGet()
	return &s
}
