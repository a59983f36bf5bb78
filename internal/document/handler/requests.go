package handler

import (
	"strings"

	"enrollhub/internal/document/models"
	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// CreateDocumentRequest is the HTTP request body for POST /documents. The
// file itself lives in external storage; this records its path and display
// name against a registration.
type CreateDocumentRequest struct {
	RegistrationID string  `json:"registration_id"`
	DocumentType   string  `json:"document_type"`
	FilePath       string  `json:"file_path"`
	FileName       string  `json:"file_name"`
	Notes          *string `json:"notes"`

	// Parsed values (populated by Validate)
	parsedRegistrationID id.RegistrationID
}

// Validate validates and parses the request. Implements the Validatable
// interface for httputil.DecodeAndPrepare.
func (r *CreateDocumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	regID, err := id.ParseRegistrationID(strings.TrimSpace(r.RegistrationID))
	if err != nil {
		return err
	}
	r.parsedRegistrationID = regID

	r.DocumentType = strings.TrimSpace(r.DocumentType)
	if r.DocumentType == "" {
		return dErrors.New(dErrors.CodeValidation, "document_type is required")
	}
	r.FilePath = strings.TrimSpace(r.FilePath)
	if r.FilePath == "" {
		return dErrors.New(dErrors.CodeValidation, "file_path is required")
	}
	r.FileName = strings.TrimSpace(r.FileName)
	if r.FileName == "" {
		return dErrors.New(dErrors.CodeValidation, "file_name is required")
	}
	return nil
}

func (r *CreateDocumentRequest) ParsedRegistrationID() id.RegistrationID {
	return r.parsedRegistrationID
}

// UpdateStatusRequest is the HTTP request body for
// PATCH /documents/{documentID}/status. verified_by is only honored when
// the target status is verified; the service clears provenance otherwise.
type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	VerifiedBy *string `json:"verified_by"`
	Notes      *string `json:"notes"`

	parsedStatus     models.Status
	parsedVerifiedBy *id.UserID
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

	if r.VerifiedBy != nil {
		verifiedBy, err := id.ParseUserID(strings.TrimSpace(*r.VerifiedBy))
		if err != nil {
			return err
		}
		r.parsedVerifiedBy = &verifiedBy
	}
	return nil
}

func (r *UpdateStatusRequest) ParsedStatus() models.Status  { return r.parsedStatus }
func (r *UpdateStatusRequest) ParsedVerifiedBy() *id.UserID { return r.parsedVerifiedBy }
