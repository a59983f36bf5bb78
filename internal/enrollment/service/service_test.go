package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	docmodels "enrollhub/internal/document/models"
	docstore "enrollhub/internal/document/store"
	paymodels "enrollhub/internal/payment/models"
	paystore "enrollhub/internal/payment/store"
	regmodels "enrollhub/internal/registration/models"
	regstore "enrollhub/internal/registration/store"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

type EnrollmentServiceSuite struct {
	suite.Suite
	registrations *regstore.InMemory
	payments      *paystore.InMemory
	documents     *docstore.InMemory
	service       *Service
	ctx           context.Context
	now           time.Time
}

func (s *EnrollmentServiceSuite) SetupTest() {
	s.registrations = regstore.NewInMemory()
	s.payments = paystore.NewInMemory()
	s.documents = docstore.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.registrations, s.payments, s.documents, logger)
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
}

func TestEnrollmentServiceSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentServiceSuite))
}

func (s *EnrollmentServiceSuite) seedRegistration(userID id.UserID, createdAt time.Time) *regmodels.Registration {
	registration := regmodels.NewRegistration(id.NewRegistrationID(), userID, id.NewProgramID(), nil, createdAt)
	s.Require().NoError(s.registrations.Create(s.ctx, registration))
	return registration
}

func (s *EnrollmentServiceSuite) seedPayment(regID id.RegistrationID, createdAt time.Time) *paymodels.Payment {
	payment := paymodels.NewPayment(id.NewPaymentID(), regID, id.MustAmount("1500.00"), paymodels.MethodBankTransfer, nil, nil, createdAt)
	s.Require().NoError(s.payments.Create(s.ctx, payment))
	return payment
}

func (s *EnrollmentServiceSuite) seedDocument(regID id.RegistrationID, createdAt time.Time) *docmodels.Document {
	document := docmodels.NewDocument(id.NewDocumentID(), regID, "id_card", "/uploads/id.pdf", "id.pdf", nil, createdAt)
	s.Require().NoError(s.documents.Create(s.ctx, document))
	return document
}

func (s *EnrollmentServiceSuite) TestSummarize() {
	s.Run("assembles registration, latest payment and pending documents", func() {
		registration := s.seedRegistration(id.NewUserID(), s.now)
		s.seedPayment(registration.ID, s.now.Add(-time.Hour))
		latest := s.seedPayment(registration.ID, s.now)
		pendingDoc := s.seedDocument(registration.ID, s.now)

		verified := s.seedDocument(registration.ID, s.now)
		reviewer := id.NewUserID()
		at := s.now
		_, err := s.documents.UpdateStatus(s.ctx, verified.ID, docmodels.StatusVerified, &reviewer, &at, nil, s.now)
		s.Require().NoError(err)

		summary, err := s.service.Summarize(s.ctx, registration.ID)
		s.Require().NoError(err)
		s.Equal(registration.ID, summary.Registration.ID)
		s.Require().NotNil(summary.LatestPayment)
		s.Equal(latest.ID, summary.LatestPayment.ID)
		s.Require().Len(summary.PendingDocuments, 1)
		s.Equal(pendingDoc.ID, summary.PendingDocuments[0].ID)
	})

	s.Run("registration with no payments or documents still summarizes", func() {
		registration := s.seedRegistration(id.NewUserID(), s.now)

		summary, err := s.service.Summarize(s.ctx, registration.ID)
		s.Require().NoError(err)
		s.Nil(summary.LatestPayment)
		s.Empty(summary.PendingDocuments)
	})

	s.Run("unknown registration is not_found", func() {
		_, err := s.service.Summarize(s.ctx, id.NewRegistrationID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *EnrollmentServiceSuite) TestSummariesByUser() {
	s.Run("returns one summary per registration, newest first", func() {
		userID := id.NewUserID()
		older := s.seedRegistration(userID, s.now.Add(-time.Hour))
		newer := s.seedRegistration(userID, s.now)
		s.seedRegistration(id.NewUserID(), s.now)

		summaries, err := s.service.SummariesByUser(s.ctx, userID)
		s.Require().NoError(err)
		s.Require().Len(summaries, 2)
		s.Equal(newer.ID, summaries[0].Registration.ID)
		s.Equal(older.ID, summaries[1].Registration.ID)
	})

	s.Run("user with no registrations gets an empty list", func() {
		summaries, err := s.service.SummariesByUser(s.ctx, id.NewUserID())
		s.Require().NoError(err)
		s.Empty(summaries)
	})
}
