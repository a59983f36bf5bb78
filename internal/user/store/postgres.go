package store

import (
	"context"
	"database/sql"
	"fmt"

	"enrollhub/internal/platform/database"
	"enrollhub/internal/user/models"
	id "enrollhub/pkg/domain"
	txcontext "enrollhub/pkg/platform/tx"

	"github.com/google/uuid"
)

// Postgres persists users. Email uniqueness is enforced by the unique
// index and surfaces as sentinel.ErrConflict through database.MapError.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type dbConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) conn(ctx context.Context) dbConn {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const userColumns = `id, email, password_hash, full_name, phone, address, role, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, user *models.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(user.ID),
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Phone,
		user.Address,
		string(user.Role),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", database.MapError(err))
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	user, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(userID)))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", database.MapError(err))
	}
	return user, nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = LOWER($1)
	`
	user, err := scanUser(s.conn(ctx).QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", database.MapError(err))
	}
	return user, nil
}

func (s *Postgres) Exists(ctx context.Context, userID id.UserID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var exists bool
	if err := s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(userID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user   models.User
		userID uuid.UUID
		role   string
	)
	err := row.Scan(
		&userID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Phone,
		&user.Address,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.ID = id.UserID(userID)
	user.Role = models.Role(role)
	return &user, nil
}
