package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"enrollhub/internal/audit"
	auditmem "enrollhub/internal/audit/store/memory"
	"enrollhub/internal/document/models"
	"enrollhub/internal/document/store"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/requestcontext"
)

type registrationDirectoryStub struct{ ids map[string]bool }

func (s registrationDirectoryStub) Exists(_ context.Context, regID id.RegistrationID) (bool, error) {
	return s.ids[regID.String()], nil
}

type DocumentServiceSuite struct {
	suite.Suite
	store         *store.InMemory
	registrations registrationDirectoryStub
	auditLog      *auditmem.Store
	service       *Service
	ctx           context.Context
	now           time.Time
}

func (s *DocumentServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.registrations = registrationDirectoryStub{ids: map[string]bool{}}
	s.auditLog = auditmem.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewService(s.store, s.registrations, logger,
		WithAudit(audit.NewPublisher(s.auditLog, logger)),
	)
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *DocumentServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func TestDocumentServiceSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) knownRegistration() id.RegistrationID {
	regID := id.NewRegistrationID()
	s.registrations.ids[regID.String()] = true
	return regID
}

func (s *DocumentServiceSuite) createDocument() *models.Document {
	document, err := s.service.Create(s.ctx, s.knownRegistration(), "id_card", "/uploads/id-card.pdf", "id-card.pdf", nil)
	s.Require().NoError(err)
	return document
}

func (s *DocumentServiceSuite) TestCreate() {
	s.Run("new document starts pending with no provenance", func() {
		document := s.createDocument()
		s.Equal(models.StatusPending, document.Status)
		s.Nil(document.VerifiedBy)
		s.Nil(document.VerifiedAt)

		events := s.auditLog.Events()
		s.Require().Len(events, 1)
		s.Equal(audit.ActionDocumentCreated, events[0].Action)
	})

	s.Run("missing registration is a reference failure and persists nothing", func() {
		_, err := s.service.Create(s.ctx, id.NewRegistrationID(), "id_card", "/uploads/x.pdf", "x.pdf", nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeReferenceNotFound))

		pending, listErr := s.store.ListPending(s.ctx)
		s.Require().NoError(listErr)
		s.Empty(pending)
	})
}

func (s *DocumentServiceSuite) TestSetStatus() {
	s.Run("verified stamps reviewer and request time", func() {
		document := s.createDocument()
		reviewer := id.NewUserID()

		later := s.now.Add(time.Hour)
		updated, err := s.service.SetStatus(requestcontext.WithTime(s.ctx, later), document.ID, models.StatusVerified, &reviewer, nil)
		s.Require().NoError(err)
		s.Equal(models.StatusVerified, updated.Status)
		s.Require().NotNil(updated.VerifiedBy)
		s.Equal(reviewer, *updated.VerifiedBy)
		s.Require().NotNil(updated.VerifiedAt)
		s.Equal(later, *updated.VerifiedAt)
	})

	s.Run("verified without a reviewer is rejected", func() {
		document := s.createDocument()

		_, err := s.service.SetStatus(s.ctx, document.ID, models.StatusVerified, nil, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		unchanged, err := s.service.Get(s.ctx, document.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, unchanged.Status)
	})

	s.Run("moving away from verified clears provenance", func() {
		document := s.createDocument()
		reviewer := id.NewUserID()

		_, err := s.service.SetStatus(s.ctx, document.ID, models.StatusVerified, &reviewer, nil)
		s.Require().NoError(err)

		updated, err := s.service.SetStatus(s.ctx, document.ID, models.StatusPending, nil, nil)
		s.Require().NoError(err)
		s.Equal(models.StatusPending, updated.Status)
		s.Nil(updated.VerifiedBy)
		s.Nil(updated.VerifiedAt)
	})

	s.Run("rejecting ignores any supplied reviewer", func() {
		document := s.createDocument()
		reviewer := id.NewUserID()
		note := "blurry scan"

		updated, err := s.service.SetStatus(s.ctx, document.ID, models.StatusRejected, &reviewer, &note)
		s.Require().NoError(err)
		s.Equal(models.StatusRejected, updated.Status)
		s.Nil(updated.VerifiedBy)
		s.Nil(updated.VerifiedAt)
		s.Require().NotNil(updated.Notes)
		s.Equal(note, *updated.Notes)
	})

	s.Run("double reject is idempotent apart from updated_at", func() {
		document := s.createDocument()
		note := "blurry scan"

		first, err := s.service.SetStatus(s.ctx, document.ID, models.StatusRejected, nil, &note)
		s.Require().NoError(err)

		later := s.now.Add(2 * time.Hour)
		second, err := s.service.SetStatus(requestcontext.WithTime(s.ctx, later), document.ID, models.StatusRejected, nil, &note)
		s.Require().NoError(err)
		s.Equal(first.Status, second.Status)
		s.Equal(*first.Notes, *second.Notes)
		s.Equal(later, second.UpdatedAt)
	})

	s.Run("unknown id rejects with not_found", func() {
		_, err := s.service.SetStatus(s.ctx, id.NewDocumentID(), models.StatusRejected, nil, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *DocumentServiceSuite) TestListPending() {
	s.Run("only pending documents enter the queue, oldest first", func() {
		first := s.createDocument()
		second, err := s.service.Create(requestcontext.WithTime(s.ctx, s.now.Add(time.Minute)), s.knownRegistration(), "certificate", "/uploads/cert.pdf", "cert.pdf", nil)
		s.Require().NoError(err)
		reviewer := id.NewUserID()
		_, err = s.service.SetStatus(s.ctx, first.ID, models.StatusVerified, &reviewer, nil)
		s.Require().NoError(err)

		pending, err := s.service.ListPending(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(pending, 1)
		s.Equal(second.ID, pending[0].ID)
	})
}
