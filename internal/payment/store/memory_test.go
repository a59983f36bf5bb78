package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"enrollhub/internal/payment/models"
	id "enrollhub/pkg/domain"
	"enrollhub/pkg/platform/sentinel"
)

type PaymentStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *PaymentStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestPaymentStoreSuite(t *testing.T) {
	suite.Run(t, new(PaymentStoreSuite))
}

func (s *PaymentStoreSuite) newPayment(regID id.RegistrationID, createdAt time.Time) *models.Payment {
	return models.NewPayment(id.NewPaymentID(), regID, id.MustAmount("1500.00"), models.MethodBankTransfer, nil, nil, createdAt)
}

func (s *PaymentStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds payment by ID", func() {
		payment := s.newPayment(id.NewRegistrationID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, payment))

		found, err := s.store.FindByID(s.ctx, payment.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, found.Status)
		s.Nil(found.PaymentDate)
		s.True(found.Amount.Equal(id.MustAmount("1500.00")))
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewPaymentID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PaymentStoreSuite) TestUpdateStatus() {
	s.Run("absent fields are left untouched", func() {
		payment := s.newPayment(id.NewRegistrationID(), time.Now())
		txnID := "TXN-001"
		note := "first attempt"
		payment.TransactionID = &txnID
		payment.Notes = &note
		s.Require().NoError(s.store.Create(s.ctx, payment))

		updated, err := s.store.UpdateStatus(s.ctx, payment.ID, models.StatusUpdate{Status: models.StatusFailed}, time.Now())
		s.Require().NoError(err)
		s.Equal(models.StatusFailed, updated.Status)
		s.Require().NotNil(updated.TransactionID)
		s.Equal(txnID, *updated.TransactionID)
		s.Require().NotNil(updated.Notes)
		s.Equal(note, *updated.Notes)
	})

	s.Run("explicit nulls clear stored values", func() {
		payment := s.newPayment(id.NewRegistrationID(), time.Now())
		txnID := "TXN-002"
		payment.TransactionID = &txnID
		s.Require().NoError(s.store.Create(s.ctx, payment))

		updated, err := s.store.UpdateStatus(s.ctx, payment.ID, models.StatusUpdate{
			Status:        models.StatusFailed,
			TransactionID: id.Null[string](),
			Notes:         id.Null[string](),
		}, time.Now())
		s.Require().NoError(err)
		s.Nil(updated.TransactionID)
		s.Nil(updated.Notes)
	})

	s.Run("provided values replace stored values", func() {
		payment := s.newPayment(id.NewRegistrationID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, payment))

		when := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
		updated, err := s.store.UpdateStatus(s.ctx, payment.ID, models.StatusUpdate{
			Status:        models.StatusPaid,
			PaymentDate:   id.Some(when),
			TransactionID: id.Some("TXN-003"),
		}, time.Now())
		s.Require().NoError(err)
		s.Require().NotNil(updated.PaymentDate)
		s.Equal(when, *updated.PaymentDate)
		s.Require().NotNil(updated.TransactionID)
		s.Equal("TXN-003", *updated.TransactionID)
	})

	s.Run("DefaultDateToNow fills only a null date", func() {
		payment := s.newPayment(id.NewRegistrationID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, payment))

		now := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
		updated, err := s.store.UpdateStatus(s.ctx, payment.ID, models.StatusUpdate{
			Status:           models.StatusPaid,
			DefaultDateToNow: true,
		}, now)
		s.Require().NoError(err)
		s.Require().NotNil(updated.PaymentDate)
		s.Equal(now, *updated.PaymentDate)

		// a second pass must not move the already-set date
		later := now.Add(time.Hour)
		updated, err = s.store.UpdateStatus(s.ctx, payment.ID, models.StatusUpdate{
			Status:           models.StatusPaid,
			DefaultDateToNow: true,
		}, later)
		s.Require().NoError(err)
		s.Require().NotNil(updated.PaymentDate)
		s.Equal(now, *updated.PaymentDate)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.UpdateStatus(s.ctx, id.NewPaymentID(), models.StatusUpdate{Status: models.StatusPaid}, time.Now())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned payment does not alias store memory", func() {
		payment := s.newPayment(id.NewRegistrationID(), time.Now())
		s.Require().NoError(s.store.Create(s.ctx, payment))

		updated, err := s.store.UpdateStatus(s.ctx, payment.ID, models.StatusUpdate{
			Status: models.StatusPaid,
			Notes:  id.Some("settled"),
		}, time.Now())
		s.Require().NoError(err)
		*updated.Notes = "tampered"

		found, err := s.store.FindByID(s.ctx, payment.ID)
		s.Require().NoError(err)
		s.Equal("settled", *found.Notes)
	})
}

func (s *PaymentStoreSuite) TestListings() {
	s.Run("lists by registration newest first", func() {
		regID := id.NewRegistrationID()
		base := time.Now()
		older := s.newPayment(regID, base.Add(-time.Hour))
		newer := s.newPayment(regID, base)
		other := s.newPayment(id.NewRegistrationID(), base)
		s.Require().NoError(s.store.Create(s.ctx, older))
		s.Require().NoError(s.store.Create(s.ctx, newer))
		s.Require().NoError(s.store.Create(s.ctx, other))

		listed, err := s.store.ListByRegistration(s.ctx, regID)
		s.Require().NoError(err)
		s.Require().Len(listed, 2)
		s.Equal(newer.ID, listed[0].ID)
		s.Equal(older.ID, listed[1].ID)
	})

	s.Run("ListAll returns every payment", func() {
		listed, err := s.store.ListAll(s.ctx)
		s.Require().NoError(err)
		s.Len(listed, 3)
	})
}
