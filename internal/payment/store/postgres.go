package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"enrollhub/internal/payment/models"
	"enrollhub/internal/platform/database"
	id "enrollhub/pkg/domain"
	txcontext "enrollhub/pkg/platform/tx"

	"github.com/google/uuid"
)

// Postgres persists payments. Partial status updates are built as a dynamic
// SET list so absent fields never appear in the statement at all; each
// update is a single UPDATE ... RETURNING keyed by primary id.
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

const paymentColumns = `id, registration_id, amount, payment_method, payment_status, payment_date, transaction_id, notes, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, payment *models.Payment) error {
	const query = `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		uuid.UUID(payment.ID),
		uuid.UUID(payment.RegistrationID),
		payment.Amount,
		string(payment.Method),
		string(payment.Status),
		payment.PaymentDate,
		payment.TransactionID,
		payment.Notes,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", database.MapError(err))
	}
	return nil
}

func (s *Postgres) UpdateStatus(ctx context.Context, payID id.PaymentID, update models.StatusUpdate, now time.Time) (*models.Payment, error) {
	sets := []string{"payment_status = $2", "updated_at = $3"}
	args := []any{uuid.UUID(payID), string(update.Status), now}

	next := func(arg any) string {
		args = append(args, arg)
		return fmt.Sprintf("$%d", len(args))
	}

	switch {
	case update.PaymentDate.Set:
		sets = append(sets, "payment_date = "+next(optionalTime(update.PaymentDate)))
	case update.DefaultDateToNow:
		sets = append(sets, "payment_date = COALESCE(payment_date, "+next(now)+")")
	}
	if update.TransactionID.Set {
		sets = append(sets, "transaction_id = "+next(optionalString(update.TransactionID)))
	}
	if update.Notes.Set {
		sets = append(sets, "notes = "+next(optionalString(update.Notes)))
	}

	query := `
		UPDATE payments
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1
		RETURNING ` + paymentColumns
	row := s.conn(ctx).QueryRowContext(ctx, query, args...)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", database.MapError(err))
	}
	return payment, nil
}

func (s *Postgres) FindByID(ctx context.Context, payID id.PaymentID) (*models.Payment, error) {
	const query = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1
	`
	payment, err := scanPayment(s.conn(ctx).QueryRowContext(ctx, query, uuid.UUID(payID)))
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", database.MapError(err))
	}
	return payment, nil
}

func (s *Postgres) ListAll(ctx context.Context) ([]*models.Payment, error) {
	const query = `
		SELECT ` + paymentColumns + `
		FROM payments
		ORDER BY created_at DESC, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

func (s *Postgres) ListByRegistration(ctx context.Context, regID id.RegistrationID) ([]*models.Payment, error) {
	const query = `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE registration_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := s.conn(ctx).QueryContext(ctx, query, uuid.UUID(regID))
	if err != nil {
		return nil, fmt.Errorf("list payments by registration: %w", err)
	}
	defer rows.Close()
	return collectPayments(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var (
		payment models.Payment
		payID   uuid.UUID
		regID   uuid.UUID
		method  string
		status  string
	)
	err := row.Scan(
		&payID,
		&regID,
		&payment.Amount,
		&method,
		&status,
		&payment.PaymentDate,
		&payment.TransactionID,
		&payment.Notes,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.ID = id.PaymentID(payID)
	payment.RegistrationID = id.RegistrationID(regID)
	payment.Method = models.Method(method)
	payment.Status = models.Status(status)
	return &payment, nil
}

func collectPayments(rows *sql.Rows) ([]*models.Payment, error) {
	var out []*models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, payment)
	}
	return out, rows.Err()
}
