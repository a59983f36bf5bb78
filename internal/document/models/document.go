package models

import (
	"time"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// Status is the document verification state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusVerified, StatusRejected:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "status must be one of pending, verified, rejected")
	}
}

// Document is one uploaded file attached to a registration.
//
// The verification fields are coupled to the status: a verified document
// always carries who verified it and when, and a pending or rejected
// document never does. The service enforces the coupling on every update.
type Document struct {
	ID             id.DocumentID     `json:"id"`
	RegistrationID id.RegistrationID `json:"registration_id"`
	DocumentType   string            `json:"document_type"`
	FilePath       string            `json:"file_path"`
	FileName       string            `json:"file_name"`
	Status         Status            `json:"status"`
	VerifiedBy     *id.UserID        `json:"verified_by"`
	VerifiedAt     *time.Time        `json:"verified_at"`
	Notes          *string           `json:"notes"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewDocument builds a pending document with no verification provenance.
func NewDocument(docID id.DocumentID, regID id.RegistrationID, documentType, filePath, fileName string, notes *string, now time.Time) *Document {
	return &Document{
		ID:             docID,
		RegistrationID: regID,
		DocumentType:   documentType,
		FilePath:       filePath,
		FileName:       fileName,
		Status:         StatusPending,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
