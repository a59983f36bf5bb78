package store

import (
	"context"
	"database/sql"
	"fmt"

	"enrollhub/internal/platform/database"
	"enrollhub/internal/program/models"
	id "enrollhub/pkg/domain"
	txcontext "enrollhub/pkg/platform/tx"

	"github.com/google/uuid"
)

// Postgres persists training programs.
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

const programColumns = `id, name, description, duration_hours, price, max_participants, start_date, end_date, is_active, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, program *models.TrainingProgram) error {
	const query = `
		INSERT INTO training_programs (` + programColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(program.ID),
		program.Name,
		program.Description,
		program.DurationHours,
		program.Price,
		program.MaxParticipants,
		program.StartDate,
		program.EndDate,
		program.IsActive,
		program.CreatedAt,
		program.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create program: %w", database.MapError(err))
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, programID id.ProgramID) (*models.TrainingProgram, error) {
	const query = `
		SELECT ` + programColumns + `
		FROM training_programs
		WHERE id = $1
	`
	program, err := scanProgram(s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(programID)))
	if err != nil {
		return nil, fmt.Errorf("find program: %w", database.MapError(err))
	}
	return program, nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.TrainingProgram, error) {
	const query = `
		SELECT ` + programColumns + `
		FROM training_programs
		ORDER BY created_at DESC, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	var out []*models.TrainingProgram
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		out = append(out, program)
	}
	return out, rows.Err()
}

func (s *Postgres) Exists(ctx context.Context, programID id.ProgramID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM training_programs WHERE id = $1)`
	var exists bool
	if err := s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(programID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check program exists: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgram(row rowScanner) (*models.TrainingProgram, error) {
	var (
		program   models.TrainingProgram
		programID uuid.UUID
	)
	err := row.Scan(
		&programID,
		&program.Name,
		&program.Description,
		&program.DurationHours,
		&program.Price,
		&program.MaxParticipants,
		&program.StartDate,
		&program.EndDate,
		&program.IsActive,
		&program.CreatedAt,
		&program.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	program.ID = id.ProgramID(programID)
	return &program, nil
}
