package models

import (
	"time"

	id "enrollhub/pkg/domain"
)

// TrainingProgram is an offering users register for. Price is an exact
// decimal; a free program carries 0.00.
type TrainingProgram struct {
	ID              id.ProgramID `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	DurationHours   int          `json:"duration_hours"`
	Price           id.Amount    `json:"price"`
	MaxParticipants int          `json:"max_participants"`
	StartDate       time.Time    `json:"start_date"`
	EndDate         time.Time    `json:"end_date"`
	IsActive        bool         `json:"is_active"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// NewTrainingProgram builds an active program.
func NewTrainingProgram(programID id.ProgramID, name, description string, durationHours int, price id.Amount, maxParticipants int, startDate, endDate time.Time, now time.Time) *TrainingProgram {
	return &TrainingProgram{
		ID:              programID,
		Name:            name,
		Description:     description,
		DurationHours:   durationHours,
		Price:           price,
		MaxParticipants: maxParticipants,
		StartDate:       startDate,
		EndDate:         endDate,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
