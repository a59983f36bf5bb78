package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enrollhub/internal/audit"
	docmetrics "enrollhub/internal/document/metrics"
	"enrollhub/internal/document/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/requestcontext"
)

// Store is the persistence boundary for documents. UpdateStatus replaces
// the full verification tuple on one row atomically; the service computes
// the tuple, the store never interprets it.
type Store interface {
	Create(ctx context.Context, document *models.Document) error
	UpdateStatus(ctx context.Context, docID id.DocumentID, status models.Status, verifiedBy *id.UserID, verifiedAt *time.Time, notes *string, now time.Time) (*models.Document, error)
	FindByID(ctx context.Context, docID id.DocumentID) (*models.Document, error)
	ListPending(ctx context.Context) ([]*models.Document, error)
	ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*models.Document, error)
}

// RegistrationDirectory is the reference-existence port onto the
// registration module.
type RegistrationDirectory interface {
	Exists(ctx context.Context, regID id.RegistrationID) (bool, error)
}

// Service owns the document verification lifecycle.
type Service struct {
	store         Store
	registrations RegistrationDirectory
	logger        *slog.Logger
	metrics       *docmetrics.Metrics
	audit         *audit.Publisher
}

type Option func(*Service)

func WithMetrics(m *docmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(store Store, registrations RegistrationDirectory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, registrations: registrations, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records an uploaded document. Every document starts pending with
// no verification provenance regardless of caller input.
func (s *Service) Create(ctx context.Context, regID id.RegistrationID, documentType, filePath, fileName string, notes *string) (*models.Document, error) {
	exists, err := s.registrations.Exists(ctx, regID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check registration reference")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeReferenceNotFound, "registration "+regID.String()+" does not exist")
	}

	document := models.NewDocument(id.NewDocumentID(), regID, documentType, filePath, fileName, notes, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, document); err != nil {
		if errors.Is(err, sentinel.ErrReferenceMissing) {
			return nil, dErrors.New(dErrors.CodeReferenceNotFound, "registration "+regID.String()+" does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create document")
	}

	s.audit.Emit(ctx, audit.ActionDocumentCreated, document.ID.String(), string(document.Status))
	s.metrics.IncrementCreated()
	return document, nil
}

// SetStatus moves a document through verification. The verification tuple
// is forced from the target status, never taken at face value from the
// caller: verified stamps the reviewer and the request time, any other
// status clears both. Notes are replaced wholesale.
func (s *Service) SetStatus(ctx context.Context, docID id.DocumentID, status models.Status, verifiedBy *id.UserID, notes *string) (*models.Document, error) {
	if docID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "document id is required")
	}

	var (
		by *id.UserID
		at *time.Time
	)
	if status == models.StatusVerified {
		if verifiedBy == nil || verifiedBy.IsNil() {
			return nil, dErrors.New(dErrors.CodeValidation, "verified_by is required when status is verified")
		}
		by = verifiedBy
		now := requestcontext.Now(ctx)
		at = &now
	}

	document, err := s.store.UpdateStatus(ctx, docID, status, by, at, notes, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document "+docID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update document status")
	}

	s.audit.Emit(ctx, audit.ActionDocumentStatusSet, document.ID.String(), string(status))
	s.metrics.IncrementStatusUpdate(string(status))
	return document, nil
}

// ListPending returns the verification queue, oldest submissions first so
// reviewers drain it in arrival order.
func (s *Service) ListPending(ctx context.Context) ([]*models.Document, error) {
	documents, err := s.store.ListPending(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending documents")
	}
	return documents, nil
}

// ListByRegistration returns every document attached to one registration.
func (s *Service) ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*models.Document, error) {
	documents, err := s.store.ListByRegistration(ctx, regID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents by registration")
	}
	return documents, nil
}

// Get returns one document by id.
func (s *Service) Get(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	document, err := s.store.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document "+docID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	return document, nil
}
