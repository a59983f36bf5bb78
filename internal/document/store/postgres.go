package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"enrollhub/internal/document/models"
	"enrollhub/internal/platform/database"
	id "enrollhub/pkg/domain"
	txcontext "enrollhub/pkg/platform/tx"

	"github.com/google/uuid"
)

// Postgres persists documents. Status updates replace the verification
// tuple in one UPDATE ... RETURNING so status and provenance can never
// drift apart between statements.
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

const documentColumns = `id, registration_id, document_type, file_path, file_name, status, verified_by, verified_at, notes, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, document *models.Document) error {
	const query = `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(document.ID),
		uuid.UUID(document.RegistrationID),
		document.DocumentType,
		document.FilePath,
		document.FileName,
		string(document.Status),
		verifiedByValue(document.VerifiedBy),
		document.VerifiedAt,
		document.Notes,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create document: %w", database.MapError(err))
	}
	return nil
}

func (s *Postgres) UpdateStatus(ctx context.Context, docID id.DocumentID, status models.Status, verifiedBy *id.UserID, verifiedAt *time.Time, notes *string, now time.Time) (*models.Document, error) {
	const query = `
		UPDATE documents
		SET status = $2, verified_by = $3, verified_at = $4, notes = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + documentColumns
	row := s.conn(ctx).QueryRowContext(ctx, query,
		uuid.UUID(docID),
		string(status),
		verifiedByValue(verifiedBy),
		verifiedAt,
		notes,
		now,
	)
	document, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("update document status: %w", database.MapError(err))
	}
	return document, nil
}

func (s *Postgres) FindByID(ctx context.Context, docID id.DocumentID) (*models.Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	document, err := scanDocument(s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(docID)))
	if err != nil {
		return nil, fmt.Errorf("find document: %w", database.MapError(err))
	}
	return document, nil
}

func (s *Postgres) ListPending(ctx context.Context) ([]*models.Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE status = 'pending'
		ORDER BY created_at, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending documents: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func (s *Postgres) ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*models.Document, error) {
	const query = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE registration_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, uuid.UUID(regID))
	if err != nil {
		return nil, fmt.Errorf("list documents by registration: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func verifiedByValue(verifiedBy *id.UserID) any {
	if verifiedBy == nil {
		return nil
	}
	return uuid.UUID(*verifiedBy)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		document   models.Document
		docID      uuid.UUID
		regID      uuid.UUID
		status     string
		verifiedBy *uuid.UUID
	)
	err := row.Scan(
		&docID,
		&regID,
		&document.DocumentType,
		&document.FilePath,
		&document.FileName,
		&status,
		&verifiedBy,
		&document.VerifiedAt,
		&document.Notes,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	document.ID = id.DocumentID(docID)
	document.RegistrationID = id.RegistrationID(regID)
	document.Status = models.Status(status)
	if verifiedBy != nil {
		by := id.UserID(*verifiedBy)
		document.VerifiedBy = &by
	}
	return &document, nil
}

func collectDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var out []*models.Document
	for rows.Next() {
		document, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, document)
	}
	return out, rows.Err()
}
