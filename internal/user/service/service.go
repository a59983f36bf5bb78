package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"enrollhub/internal/audit"
	"enrollhub/internal/user/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
	"enrollhub/pkg/platform/sentinel"
	"enrollhub/pkg/requestcontext"
)

// Store is the persistence boundary for users. Create returns
// sentinel.ErrConflict when the email is already taken.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, userID id.UserID) (bool, error)
}

// Service owns account creation. It hashes credentials before they reach
// the store; plaintext passwords never leave this package.
type Service struct {
	store  Store
	logger *slog.Logger
	audit  *audit.Publisher
}

type Option func(*Service)

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

// Create registers a new account. Emails are stored lowercased so
// uniqueness is case-insensitive.
func (s *Service) Create(ctx context.Context, email, password, fullName, phone string, address *string, role models.Role) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := models.NewUser(id.NewUserID(), email, string(hash), fullName, phone, address, role, requestcontext.Now(ctx))
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email "+email+" is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.audit.Emit(ctx, audit.ActionUserCreated, user.ID.String(), string(user.Role))
	return user, nil
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user "+userID.String()+" not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// Exists reports whether a user id names an existing account. Other
// modules consume this as their reference-existence port.
func (s *Service) Exists(ctx context.Context, userID id.UserID) (bool, error) {
	return s.store.Exists(ctx, userID)
}
