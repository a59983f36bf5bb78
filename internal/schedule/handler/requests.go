package handler

import (
	"strings"
	"time"

	dErrors "enrollhub/pkg/domain-errors"
)

// CreateSessionRequest is the HTTP request body for
// POST /programs/{programID}/schedule. The program id comes from the URL.
type CreateSessionRequest struct {
	SessionTitle string    `json:"session_title"`
	SessionDate  time.Time `json:"session_date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Location     *string   `json:"location"`
	Materials    *string   `json:"materials"`
}

// Validate validates the request. Implements the Validatable interface for
// httputil.DecodeAndPrepare. Times are 24-hour wall-clock strings.
func (r *CreateSessionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.SessionTitle = strings.TrimSpace(r.SessionTitle)
	if r.SessionTitle == "" {
		return dErrors.New(dErrors.CodeValidation, "session_title is required")
	}
	if r.SessionDate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "session_date is required")
	}

	start, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "start_time must be a 24-hour HH:MM time")
	}
	end, err := time.Parse("15:04", r.EndTime)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "end_time must be a 24-hour HH:MM time")
	}
	if !end.After(start) {
		return dErrors.New(dErrors.CodeValidation, "end_time must be after start_time")
	}
	return nil
}
