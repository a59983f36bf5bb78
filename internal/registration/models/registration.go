package models

import (
	"time"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// Status is the registration lifecycle state. The intended flow is
// pending → verified → completed with rejected as the failure branch, but
// no transition table restricts it: status is administrator-controlled,
// not strictly sequenced.
type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// ParseStatus validates a caller-supplied status against the closed set.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusVerified, StatusRejected, StatusCompleted:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be one of pending, verified, rejected, completed")
	}
}

// Registration links one participant to one training program.
//
// Invariants:
//   - Status is always a member of the closed set above
//   - RegistrationDate is set at creation and never changes
//   - UserID and ProgramID reference existing rows at creation time
//
// The model does not enforce uniqueness of (user, program): repeat
// registrations are structurally possible and each row is one enrollment
// attempt.
type Registration struct {
	ID               id.RegistrationID `json:"id"`
	UserID           id.UserID         `json:"user_id"`
	ProgramID        id.ProgramID      `json:"program_id"`
	Status           Status            `json:"status"`
	RegistrationDate time.Time         `json:"registration_date"`
	Notes            *string           `json:"notes"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewRegistration builds a pending registration. Callers never choose the
// initial status.
func NewRegistration(regID id.RegistrationID, userID id.UserID, programID id.ProgramID, notes *string, now time.Time) *Registration {
	return &Registration{
		ID:               regID,
		UserID:           userID,
		ProgramID:        programID,
		Status:           StatusPending,
		RegistrationDate: now,
		Notes:            notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
