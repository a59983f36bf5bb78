package handler

import (
	"strings"
	"time"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// CreateProgramRequest is the HTTP request body for POST /programs. Dates
// travel as RFC 3339 timestamps; price as a decimal string.
type CreateProgramRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationHours   int       `json:"duration_hours"`
	Price           id.Amount `json:"price"`
	MaxParticipants int       `json:"max_participants"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
}

// Validate validates the request. Implements the Validatable interface for
// httputil.DecodeAndPrepare. Range checks on numeric fields stay in the
// service; the handler only rejects structurally unusable bodies.
func (r *CreateProgramRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		return dErrors.New(dErrors.CodeValidation, "description is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "start_date and end_date are required")
	}
	return nil
}
