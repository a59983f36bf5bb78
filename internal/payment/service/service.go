package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enrollhub/internal/audit"
	paymetrics "enrollhub/internal/payment/metrics"
	"enrollhub/internal/payment/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/requestcontext"
)

// Store is the persistence boundary for payments.
type Store interface {
	Create(ctx context.Context, payment *models.Payment) error
	// UpdateStatus applies a partial update atomically on one row and
	// returns the updated payment, or sentinel.ErrNotFound. Absent optional
	// fields are left untouched; explicit nulls clear.
	UpdateStatus(ctx context.Context, payID id.PaymentID, update models.StatusUpdate, now time.Time) (*models.Payment, error)
	FindByID(ctx context.Context, payID id.PaymentID) (*models.Payment, error)
	ListAll(ctx context.Context) ([]*models.Payment, error)
	ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*models.Payment, error)
}

// RegistrationDirectory is the reference-existence port onto the
// registration module.
type RegistrationDirectory interface {
	Exists(ctx context.Context, regID id.RegistrationID) (bool, error)
}

// Service owns the payment settlement lifecycle. Amount positivity is
// enforced again here even though the request boundary already rejects
// non-positive values; the service is independently callable.
type Service struct {
	store         Store
	registrations RegistrationDirectory
	logger        *slog.Logger
	metrics       *paymetrics.Metrics
	audit         *audit.Publisher
}

type Option func(*Service)

func WithMetrics(m *paymetrics.Metrics) Option {
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

// Create records a new settlement attempt. The payment starts pending with
// no settlement date regardless of caller input.
func (s *Service) Create(ctx context.Context, regID id.RegistrationID, amount id.Amount, method models.Method, transactionID, notes *string) (*models.Payment, error) {
	if !amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}
	exists, err := s.registrations.Exists(ctx, regID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check registration reference")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeReferenceNotFound, "registration "+regID.String()+" does not exist")
	}

	payment := models.NewPayment(id.NewPaymentID(), regID, amount, method, transactionID, notes, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, payment); err != nil {
		if errors.Is(err, sentinel.ErrReferenceMissing) {
			return nil, dErrors.New(dErrors.CodeReferenceNotFound, "registration "+regID.String()+" does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create payment")
	}

	s.audit.Emit(ctx, audit.ActionPaymentCreated, payment.ID.String(), string(payment.Status))
	s.metrics.IncrementCreated()
	return payment, nil
}

// SetStatus applies a partial settlement update. Optional fields follow
// tri-state semantics: absent leaves the stored value untouched, explicit
// null clears it. When the target status is paid and the date field is
// absent, a null stored date is defaulted to request time so a settled
// payment always carries a settlement date; an explicit null still clears
// (the administrator keeps the last word).
func (s *Service) SetStatus(ctx context.Context, payID id.PaymentID, update models.StatusUpdate) (*models.Payment, error) {
	if payID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "payment id is required")
	}
	update.DefaultDateToNow = update.Status == models.StatusPaid && !update.PaymentDate.Set

	payment, err := s.store.UpdateStatus(ctx, payID, update, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "payment "+payID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update payment status")
	}

	s.audit.Emit(ctx, audit.ActionPaymentStatusSet, payment.ID.String(), string(update.Status))
	s.metrics.IncrementStatusUpdate(string(update.Status))
	return payment, nil
}

// ListAll returns every payment, newest first.
func (s *Service) ListAll(ctx context.Context) ([]*models.Payment, error) {
	payments, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}
	return payments, nil
}

// Get returns one payment by id.
func (s *Service) Get(ctx context.Context, payID id.PaymentID) (*models.Payment, error) {
	payment, err := s.store.FindByID(ctx, payID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "payment "+payID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load payment")
	}
	return payment, nil
}
