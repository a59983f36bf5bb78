package handler

import (
	"strings"
	"time"

	"enrollhub/internal/payment/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// CreatePaymentRequest is the HTTP request body for POST /payments. Amounts
// travel as JSON strings so two-decimal exactness survives the wire.
type CreatePaymentRequest struct {
	RegistrationID string    `json:"registration_id"`
	Amount         id.Amount `json:"amount"`
	Method         string    `json:"payment_method"`
	TransactionID  *string   `json:"transaction_id"`
	Notes          *string   `json:"notes"`

	// Parsed values (populated by Validate)
	parsedRegistrationID id.RegistrationID
	parsedMethod         models.Method
}

// Validate validates and parses the request. Implements the Validatable
// interface for httputil.DecodeAndPrepare.
func (r *CreatePaymentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	regID, err := id.ParseRegistrationID(strings.TrimSpace(r.RegistrationID))
	if err != nil {
		return err
	}
	r.parsedRegistrationID = regID

	if !r.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "amount must be positive")
	}

	method, err := models.ParseMethod(strings.TrimSpace(r.Method))
	if err != nil {
		return err
	}
	r.parsedMethod = method
	return nil
}

func (r *CreatePaymentRequest) ParsedRegistrationID() id.RegistrationID { return r.parsedRegistrationID }
func (r *CreatePaymentRequest) ParsedMethod() models.Method             { return r.parsedMethod }

// UpdateStatusRequest is the HTTP request body for
// PATCH /payments/{paymentID}/status. Optional fields are tri-state: a
// field left out of the body is untouched, an explicit null clears the
// stored value.
type UpdateStatusRequest struct {
	Status        string                 `json:"payment_status"`
	PaymentDate   id.Optional[time.Time] `json:"payment_date"`
	TransactionID id.Optional[string]    `json:"transaction_id"`
	Notes         id.Optional[string]    `json:"notes"`

	parsedStatus models.Status
}

func (r *UpdateStatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	status, err := models.ParseStatus(strings.TrimSpace(r.Status))
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

// ParsedUpdate assembles the partial update the service applies.
func (r *UpdateStatusRequest) ParsedUpdate() models.StatusUpdate {
	return models.StatusUpdate{
		Status:        r.parsedStatus,
		PaymentDate:   r.PaymentDate,
		TransactionID: r.TransactionID,
		Notes:         r.Notes,
	}
}
