package handler

import (
	"strings"

	"enrollhub/internal/registration/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// CreateRegistrationRequest is the HTTP request body for POST /registrations.
type CreateRegistrationRequest struct {
	UserID    string  `json:"user_id"`
	ProgramID string  `json:"program_id"`
	Notes     *string `json:"notes"`

	// Parsed values (populated by Validate)
	parsedUserID    id.UserID
	parsedProgramID id.ProgramID
}

// Validate validates and parses the request. Implements the Validatable
// interface for httputil.DecodeAndPrepare.
func (r *CreateRegistrationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	r.parsedUserID = userID

	programID, err := id.ParseProgramID(strings.TrimSpace(r.ProgramID))
	if err != nil {
		return err
	}
	r.parsedProgramID = programID
	return nil
}

func (r *CreateRegistrationRequest) ParsedUserID() id.UserID       { return r.parsedUserID }
func (r *CreateRegistrationRequest) ParsedProgramID() id.ProgramID { return r.parsedProgramID }

// UpdateStatusRequest is the HTTP request body for
// PATCH /registrations/{registrationID}/status. Notes are replaced
// wholesale: omitting the field and sending null both erase prior notes.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`

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

func (r *UpdateStatusRequest) ParsedStatus() models.Status { return r.parsedStatus }
