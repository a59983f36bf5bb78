// Package audit captures structured events for every state-changing
// operation. Events are transport-agnostic; stores and sinks fan out.
package audit

import (
	"context"
	"time"
)

// Action names the operation an event records.
type Action string

const (
	ActionUserCreated             Action = "user_created"
	ActionProgramCreated          Action = "program_created"
	ActionScheduleSessionCreated  Action = "schedule_session_created"
	ActionRegistrationCreated     Action = "registration_created"
	ActionRegistrationStatusSet   Action = "registration_status_updated"
	ActionPaymentCreated          Action = "payment_created"
	ActionPaymentStatusSet        Action = "payment_status_updated"
	ActionDocumentCreated         Action = "document_created"
	ActionDocumentStatusSet       Action = "document_status_updated"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Action    Action
	Subject   string // entity id the action applied to
	Detail    string // free-form, e.g. the target status
	ActorID   string // operator identity announced by the caller, if any
	RequestID string // correlation ID from the HTTP request context
	Timestamp time.Time
}

// Store is the append-only persistence behind the publisher. The postgres
// implementation writes to the outbox table; memory keeps a slice for tests.
type Store interface {
	Append(ctx context.Context, event Event) error
}
