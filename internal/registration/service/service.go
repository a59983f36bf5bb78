package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enrollhub/internal/audit"
	regmetrics "enrollhub/internal/registration/metrics"
	"enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/requestcontext"
)

// Store is the persistence boundary for registrations. Implementations
// return sentinel errors; this service translates them into domain errors.
type Store interface {
	Create(ctx context.Context, registration *models.Registration) error
	// UpdateStatus overwrites status and notes atomically on one row and
	// returns the updated registration, or sentinel.ErrNotFound.
	UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.Status, notes *string, now time.Time) (*models.Registration, error)
	FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Registration, error)
	ListAll(ctx context.Context) ([]*models.Registration, error)
	Exists(ctx context.Context, regID id.RegistrationID) (bool, error)
}

// UserDirectory is the reference-existence port onto the user module.
type UserDirectory interface {
	Exists(ctx context.Context, userID id.UserID) (bool, error)
}

// ProgramCatalog is the reference-existence port onto the program module.
type ProgramCatalog interface {
	Exists(ctx context.Context, programID id.ProgramID) (bool, error)
}

// Service owns the registration status lifecycle. It never consults the
// payment or document managers: each lifecycle is update-isolated, and the
// enrollment coordinator composes read views across them.
type Service struct {
	store    Store
	users    UserDirectory
	programs ProgramCatalog
	logger   *slog.Logger
	metrics  *regmetrics.Metrics
	audit    *audit.Publisher
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithMetrics(m *regmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(store Store, users UserDirectory, programs ProgramCatalog, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		users:    users,
		programs: programs,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a participant into a program. Both referenced rows must
// exist; the new registration always starts pending with the registration
// date pinned to request time.
func (s *Service) Create(ctx context.Context, userID id.UserID, programID id.ProgramID, notes *string) (*models.Registration, error) {
	start := time.Now()

	userExists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check user reference")
	}
	if !userExists {
		return nil, dErrors.New(dErrors.CodeReferenceNotFound, "user "+userID.String()+" does not exist")
	}
	programExists, err := s.programs.Exists(ctx, programID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check program reference")
	}
	if !programExists {
		return nil, dErrors.New(dErrors.CodeReferenceNotFound, "program "+programID.String()+" does not exist")
	}

	registration := models.NewRegistration(id.NewRegistrationID(), userID, programID, notes, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, registration); err != nil {
		// FK backstop: a referenced row can vanish between the port check
		// and the insert.
		if errors.Is(err, sentinel.ErrReferenceMissing) {
			return nil, dErrors.New(dErrors.CodeReferenceNotFound, "referenced user or program does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create registration")
	}

	s.audit.Emit(ctx, audit.ActionRegistrationCreated, registration.ID.String(), string(registration.Status))
	s.metrics.IncrementCreated()
	s.metrics.ObserveCreate(start)
	return registration, nil
}

// SetStatus overwrites status and notes on one registration. Notes are
// replaced wholesale every call: passing nil erases prior notes, there is
// no leave-unchanged sentinel here (the payment manager is the one with
// partial-update semantics).
func (s *Service) SetStatus(ctx context.Context, regID id.RegistrationID, status models.Status, notes *string) (*models.Registration, error) {
	if regID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "registration id is required")
	}
	registration, err := s.store.UpdateStatus(ctx, regID, status, notes, requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration "+regID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update registration status")
	}

	s.audit.Emit(ctx, audit.ActionRegistrationStatusSet, registration.ID.String(), string(status))
	s.metrics.IncrementStatusUpdate(string(status))
	return registration, nil
}

// ListByUser returns every enrollment attempt for one participant.
func (s *Service) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Registration, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	registrations, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return registrations, nil
}

// ListAll returns every registration, newest first.
func (s *Service) ListAll(ctx context.Context) ([]*models.Registration, error) {
	registrations, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
	}
	return registrations, nil
}

// Exists reports whether a registration id names an existing row. The
// payment and document modules consume this as their reference-existence
// port.
func (s *Service) Exists(ctx context.Context, regID id.RegistrationID) (bool, error) {
	return s.store.Exists(ctx, regID)
}

// Get returns one registration by id.
func (s *Service) Get(ctx context.Context, regID id.RegistrationID) (*models.Registration, error) {
	registration, err := s.store.FindByID(ctx, regID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "registration "+regID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registration")
	}
	return registration, nil
}
