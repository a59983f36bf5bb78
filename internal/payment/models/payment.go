package models

import (
	"time"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// Status is the payment settlement state. Intended flows are
// pending → paid, pending → failed, and paid → refunded, but like the other
// lifecycles any target status is accepted: settlement is recorded from
// manual administrator input, not gateway confirmation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusPaid, StatusFailed, StatusRefunded:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "payment_status must be one of pending, paid, failed, refunded")
	}
}

// Method is the closed set of accepted payment channels.
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCreditCard   Method = "credit_card"
	MethodEWallet      Method = "e_wallet"
	MethodCash         Method = "cash"
)

func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodBankTransfer, MethodCreditCard, MethodEWallet, MethodCash:
		return Method(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "payment_method must be one of bank_transfer, credit_card, e_wallet, cash")
	}
}

// Payment is one settlement attempt against a registration. A registration
// may accumulate many payment rows; earlier attempts are never marked
// superseded.
//
// Invariants:
//   - Amount is strictly positive and exact to two decimal places
//   - RegistrationID references an existing row at creation time
//   - A paid payment carries a payment date (see service SetStatus)
type Payment struct {
	ID             id.PaymentID      `json:"id"`
	RegistrationID id.RegistrationID `json:"registration_id"`
	Amount         id.Amount         `json:"amount"`
	Method         Method            `json:"payment_method"`
	Status         Status            `json:"payment_status"`
	PaymentDate    *time.Time        `json:"payment_date"`
	TransactionID  *string           `json:"transaction_id"`
	Notes          *string           `json:"notes"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewPayment builds a pending payment with no settlement date.
func NewPayment(payID id.PaymentID, regID id.RegistrationID, amount id.Amount, method Method, transactionID, notes *string, now time.Time) *Payment {
	return &Payment{
		ID:             payID,
		RegistrationID: regID,
		Amount:         amount,
		Method:         method,
		Status:         StatusPending,
		TransactionID:  transactionID,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// StatusUpdate carries the partial-update request for one payment. This is
// the one manager where callers distinguish "omit" (leave the stored value
// untouched) from explicit null (clear it); each optional field is a
// tri-state.
type StatusUpdate struct {
	Status        Status
	PaymentDate   id.Optional[time.Time]
	TransactionID id.Optional[string]
	Notes         id.Optional[string]

	// DefaultDateToNow asks the store to fill a null payment_date with the
	// request time when the date field is absent. Set by the service when
	// the target status is paid so settled payments always carry a date.
	DefaultDateToNow bool
}
