package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"enrollhub/internal/audit"
	"enrollhub/internal/schedule/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/requestcontext"
)

// Store is the persistence boundary for schedule sessions.
type Store interface {
	Create(ctx context.Context, session *models.Session) error
	ListByProgram(ctx context.Context, programID id.ProgramID) ([]*models.Session, error)
}

// ProgramCatalog is the reference-existence port onto the program module.
type ProgramCatalog interface {
	Exists(ctx context.Context, programID id.ProgramID) (bool, error)
}

// Service owns the session calendar of each program.
type Service struct {
	store    Store
	programs ProgramCatalog
	logger   *slog.Logger
	audit    *audit.Publisher
}

type Option func(*Service)

func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func NewService(store Store, programs ProgramCatalog, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, programs: programs, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a session to a program's calendar. Overlapping sessions are
// allowed; the calendar records intent, it does not arbitrate rooms.
func (s *Service) Create(ctx context.Context, programID id.ProgramID, title string, sessionDate time.Time, startTime, endTime string, location, materials *string) (*models.Session, error) {
	exists, err := s.programs.Exists(ctx, programID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check program reference")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeReferenceNotFound, "program "+programID.String()+" does not exist")
	}

	session := models.NewSession(id.NewSessionID(), programID, title, sessionDate, startTime, endTime, location, materials, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, session); err != nil {
		if errors.Is(err, sentinel.ErrReferenceMissing) {
			return nil, dErrors.New(dErrors.CodeReferenceNotFound, "program "+programID.String()+" does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	s.audit.Emit(ctx, audit.ActionScheduleSessionCreated, session.ID.String(), session.SessionTitle)
	return session, nil
}

// ListByProgram returns a program's sessions in calendar order.
func (s *Service) ListByProgram(ctx context.Context, programID id.ProgramID) ([]*models.Session, error) {
	sessions, err := s.store.ListByProgram(ctx, programID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list sessions")
	}
	return sessions, nil
}
