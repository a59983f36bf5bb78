// Package domain provides typed identifiers and primitives shared across
// features. IDs are distinct types over uuid.UUID so the compiler rejects
// cross-entity mixups (passing a PaymentID where a RegistrationID is
// expected does not compile).
package domain

import (
	"github.com/google/uuid"

	dErrors "enrollhub/pkg/domain-errors"
)

type (
	// UserID identifies a participant or administrator.
	UserID uuid.UUID
	// ProgramID identifies a training program.
	ProgramID uuid.UUID
	// RegistrationID identifies a single enrollment attempt.
	RegistrationID uuid.UUID
	// PaymentID identifies a settlement attempt.
	PaymentID uuid.UUID
	// DocumentID identifies a submitted supporting document.
	DocumentID uuid.UUID
	// SessionID identifies a schedule session.
	SessionID uuid.UUID
)

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id ProgramID) String() string      { return uuid.UUID(id).String() }
func (id RegistrationID) String() string { return uuid.UUID(id).String() }
func (id PaymentID) String() string      { return uuid.UUID(id).String() }
func (id DocumentID) String() string     { return uuid.UUID(id).String() }
func (id SessionID) String() string      { return uuid.UUID(id).String() }

// MarshalText/UnmarshalText give every ID the UUID string form in JSON and
// text encodings (defined types do not inherit uuid.UUID's methods).
func (id UserID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id ProgramID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id RegistrationID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id PaymentID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id SessionID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ProgramID) UnmarshalText(text []byte) error {
	parsed, err := ParseProgramID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *RegistrationID) UnmarshalText(text []byte) error {
	parsed, err := ParseRegistrationID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *PaymentID) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DocumentID) UnmarshalText(text []byte) error {
	parsed, err := ParseDocumentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *SessionID) UnmarshalText(text []byte) error {
	parsed, err := ParseSessionID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id ProgramID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id RegistrationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// NewUserID generates a fresh identifier. The NewXxxID constructors exist so
// call sites never convert raw UUIDs by hand.
func NewUserID() UserID                 { return UserID(uuid.New()) }
func NewProgramID() ProgramID           { return ProgramID(uuid.New()) }
func NewRegistrationID() RegistrationID { return RegistrationID(uuid.New()) }
func NewPaymentID() PaymentID           { return PaymentID(uuid.New()) }
func NewDocumentID() DocumentID         { return DocumentID(uuid.New()) }
func NewSessionID() SessionID           { return SessionID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs. Enforced at trust boundaries so services can assume it.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must not be the nil UUID")
	}
	return parsed, nil
}

func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user")
	return UserID(parsed), err
}

func ParseProgramID(raw string) (ProgramID, error) {
	parsed, err := parseUUID(raw, "program")
	return ProgramID(parsed), err
}

func ParseRegistrationID(raw string) (RegistrationID, error) {
	parsed, err := parseUUID(raw, "registration")
	return RegistrationID(parsed), err
}

func ParsePaymentID(raw string) (PaymentID, error) {
	parsed, err := parseUUID(raw, "payment")
	return PaymentID(parsed), err
}

func ParseDocumentID(raw string) (DocumentID, error) {
	parsed, err := parseUUID(raw, "document")
	return DocumentID(parsed), err
}

func ParseSessionID(raw string) (SessionID, error) {
	parsed, err := parseUUID(raw, "session")
	return SessionID(parsed), err
}
