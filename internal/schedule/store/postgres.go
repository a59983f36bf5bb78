package store

import (
	"context"
	"database/sql"
	"fmt"

	"enrollhub/internal/platform/database"
	"enrollhub/internal/schedule/models"
	id "enrollhub/pkg/domain"
	txcontext "enrollhub/pkg/platform/tx"

	"github.com/google/uuid"
)

// Postgres persists schedule sessions.
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

const sessionColumns = `id, program_id, session_title, session_date, start_time, end_time, location, materials, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO schedule_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(session.ID),
		uuid.UUID(session.ProgramID),
		session.SessionTitle,
		session.SessionDate,
		session.StartTime,
		session.EndTime,
		session.Location,
		session.Materials,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", database.MapError(err))
	}
	return nil
}

func (s *Postgres) ListByProgram(ctx context.Context, programID id.ProgramID) ([]*models.Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM schedule_sessions
		WHERE program_id = $1
		ORDER BY session_date, start_time, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, uuid.UUID(programID))
	if err != nil {
		return nil, fmt.Errorf("list sessions by program: %w", err)
	}
	defer rows.Close()

	var out []*models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, session)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		session   models.Session
		sessionID uuid.UUID
		programID uuid.UUID
	)
	err := row.Scan(
		&sessionID,
		&programID,
		&session.SessionTitle,
		&session.SessionDate,
		&session.StartTime,
		&session.EndTime,
		&session.Location,
		&session.Materials,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.ID = id.SessionID(sessionID)
	session.ProgramID = id.ProgramID(programID)
	return &session, nil
}
