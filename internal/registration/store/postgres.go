package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"enrollhub/internal/platform/database"
	"enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	txcontext "enrollhub/pkg/platform/tx"

	"github.com/google/uuid"
)

// Postgres persists registrations. Status updates are a single UPDATE ...
// RETURNING keyed by primary id, which makes each transition atomic with
// respect to its row.
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

const registrationColumns = `id, user_id, program_id, status, registration_date, notes, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, registration *models.Registration) error {
	const query = `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(registration.ID),
		uuid.UUID(registration.UserID),
		uuid.UUID(registration.ProgramID),
		string(registration.Status),
		registration.RegistrationDate,
		registration.Notes,
		registration.CreatedAt,
		registration.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create registration: %w", database.MapError(err))
	}
	return nil
}

func (s *Postgres) UpdateStatus(ctx context.Context, regID id.RegistrationID, status models.Status, notes *string, now time.Time) (*models.Registration, error) {
	const query = `
		UPDATE registrations
		SET status = $2, notes = $3, updated_at = $4
		WHERE id = $1
		RETURNING ` + registrationColumns
	row := s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(regID), string(status), notes, now)
	registration, err := scanRegistration(row)
	if err != nil {
		return nil, fmt.Errorf("update registration status: %w", database.MapError(err))
	}
	return registration, nil
}

func (s *Postgres) FindByID(ctx context.Context, regID id.RegistrationID) (*models.Registration, error) {
	const query = `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE id = $1
	`
	registration, err := scanRegistration(s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(regID)))
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", database.MapError(err))
	}
	return registration, nil
}

func (s *Postgres) ListByUser(ctx context.Context, userID id.UserID) ([]*models.Registration, error) {
	const query = `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE user_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", err)
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Registration, error) {
	const query = `
		SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY created_at DESC, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	return collectRegistrations(rows)
}

func (s *Postgres) Exists(ctx context.Context, regID id.RegistrationID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM registrations WHERE id = $1)`
	var exists bool
	if err := s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(regID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check registration exists: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		registration models.Registration
		regID        uuid.UUID
		userID       uuid.UUID
		programID    uuid.UUID
		status       string
	)
	err := row.Scan(
		&regID,
		&userID,
		&programID,
		&status,
		&registration.RegistrationDate,
		&registration.Notes,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	registration.ID = id.RegistrationID(regID)
	registration.UserID = id.UserID(userID)
	registration.ProgramID = id.ProgramID(programID)
	registration.Status = models.Status(status)
	return &registration, nil
}

func collectRegistrations(rows *sql.Rows) ([]*models.Registration, error) {
	var out []*models.Registration
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, registration)
	}
	return out, rows.Err()
}
