package models

import (
	"time"

	id "enrollhub/pkg/domain"
)

// Session is one scheduled meeting of a training program. Start and end
// times are wall-clock strings ("09:00") local to wherever the session is
// held; only the session date is a real timestamp.
type Session struct {
	ID           id.SessionID `json:"id"`
	ProgramID    id.ProgramID `json:"program_id"`
	SessionTitle string       `json:"session_title"`
	SessionDate  time.Time    `json:"session_date"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Location     *string      `json:"location"`
	Materials    *string      `json:"materials"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func NewSession(sessionID id.SessionID, programID id.ProgramID, title string, sessionDate time.Time, startTime, endTime string, location, materials *string, now time.Time) *Session {
	return &Session{
		ID:           sessionID,
		ProgramID:    programID,
		SessionTitle: title,
		SessionDate:  sessionDate,
		StartTime:    startTime,
		EndTime:      endTime,
		Location:     location,
		Materials:    materials,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
