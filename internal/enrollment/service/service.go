package service

import (
	"context"
	"errors"
	"log/slog"

	docmodels "enrollhub/internal/document/models"
	paymodels "enrollhub/internal/payment/models"
	regmodels "enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
)

// RegistrationReader is the read side of the registration module.
type RegistrationReader interface {
	FindByID(ctx context.Context, regID id.RegistrationID) (*regmodels.Registration, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*regmodels.Registration, error)
}

// PaymentReader is the read side of the payment module.
type PaymentReader interface {
	ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*paymodels.Payment, error)
}

// DocumentReader is the read side of the document module.
type DocumentReader interface {
	ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*docmodels.Document, error)
}

// Summary is the coordinator's view of one registration: the registration
// itself, the most recent payment attempt, and any documents still waiting
// for review. It is assembled from reads only; the coordinator never
// writes.
type Summary struct {
	Registration     *regmodels.Registration `json:"registration"`
	LatestPayment    *paymodels.Payment      `json:"latest_payment"`
	PendingDocuments []*docmodels.Document   `json:"pending_documents"`
}

// Service composes the three lifecycle modules into enrollment views.
type Service struct {
	registrations RegistrationReader
	payments      PaymentReader
	documents     DocumentReader
	logger        *slog.Logger
}

func NewService(registrations RegistrationReader, payments PaymentReader, documents DocumentReader, logger *slog.Logger) *Service {
	return &Service{
		registrations: registrations,
		payments:      payments,
		documents:     documents,
		logger:        logger,
	}
}

// Summarize builds the view for one registration.
func (s *Service) Summarize(ctx context.Context, regID id.RegistrationID) (*Summary, error) {
	registration, err := s.registrations.FindByID(ctx, regID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration "+regID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	return s.assemble(ctx, registration)
}

// SummariesByUser builds views for every registration a user holds, newest
// first.
func (s *Service) SummariesByUser(ctx context.Context, userID id.UserID) ([]*Summary, error) {
	registrations, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}

	summaries := make([]*Summary, 0, len(registrations))
	for _, registration := range registrations {
		summary, err := s.assemble(ctx, registration)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *Service) assemble(ctx context.Context, registration *regmodels.Registration) (*Summary, error) {
	payments, err := s.payments.ListByRegistration(ctx, registration.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}

	documents, err := s.documents.ListByRegistration(ctx, registration.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}

	summary := &Summary{
		Registration:     registration,
		PendingDocuments: []*docmodels.Document{},
	}
	// payments come back newest first
	if len(payments) > 0 {
		summary.LatestPayment = payments[0]
	}
	for _, document := range documents {
		if document.Status == docmodels.StatusPending {
			summary.PendingDocuments = append(summary.PendingDocuments, document)
		}
	}
	return summary, nil
}
