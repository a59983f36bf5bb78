package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enrollhub/internal/audit"
	"enrollhub/internal/program/cache"
	"enrollhub/internal/program/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/requestcontext"
)

// Store is the persistence boundary for training programs.
type Store interface {
	Create(ctx context.Context, program *models.TrainingProgram) error
	FindByID(ctx context.Context, programID id.ProgramID) (*models.TrainingProgram, error)
	ListAll(ctx context.Context) ([]*models.TrainingProgram, error)
	Exists(ctx context.Context, programID id.ProgramID) (bool, error)
}

// Service owns the training catalog. Listings are served through the Redis
// catalog cache when one is configured; the store is always the source of
// truth.
type Service struct {
	store   Store
	catalog *cache.Catalog
	logger  *slog.Logger
	audit   *audit.Publisher
}

type Option func(*Service)

func WithCatalogCache(c *cache.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a program to the catalog and invalidates the cached listing.
func (s *Service) Create(ctx context.Context, name, description string, durationHours int, price id.Amount, maxParticipants int, startDate, endDate time.Time) (*models.TrainingProgram, error) {
	if durationHours <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "duration_hours must be positive")
	}
	if price.IsNegative() {
		return nil, dErrors.New(dErrors.CodeValidation, "price must not be negative")
	}
	if maxParticipants <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "max_participants must be positive")
	}
	if endDate.Before(startDate) {
		return nil, dErrors.New(dErrors.CodeValidation, "end_date must not precede start_date")
	}

	program := models.NewTrainingProgram(id.NewProgramID(), name, description, durationHours, price, maxParticipants, startDate, endDate, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, program); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create program")
	}
	s.catalog.Invalidate(ctx)

	s.audit.Emit(ctx, audit.ActionProgramCreated, program.ID.String(), program.Name)
	return program, nil
}

// List returns the catalog, from cache when warm. The cache always holds
// the full listing; the active-only filter is applied after the fact so one
// cached entry serves both views.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*models.TrainingProgram, error) {
	programs, ok := s.catalog.Get(ctx)
	if !ok {
		var err error
		programs, err = s.store.ListAll(ctx)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list programs")
		}
		s.catalog.Set(ctx, programs)
	}
	if !activeOnly {
		return programs, nil
	}
	active := make([]*models.TrainingProgram, 0, len(programs))
	for _, p := range programs {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// Get returns one program by id.
func (s *Service) Get(ctx context.Context, programID id.ProgramID) (*models.TrainingProgram, error) {
	program, err := s.store.FindByID(ctx, programID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "program "+programID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load program")
	}
	return program, nil
}

// Exists reports whether a program id names an existing row. Other modules
// consume this as their reference-existence port.
func (s *Service) Exists(ctx context.Context, programID id.ProgramID) (bool, error) {
	return s.store.Exists(ctx, programID)
}
