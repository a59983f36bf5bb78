package handler

import (
	"net/mail"
	"strings"

	"enrollhub/internal/user/models"
	dErrors "enrollhub/pkg/domain-errors"
)

// CreateUserRequest is the HTTP request body for POST /users.
type CreateUserRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Address  *string `json:"address"`
	Role     string  `json:"role"`

	parsedRole models.Role
}

// Validate validates and parses the request. Implements the Validatable
// interface for httputil.DecodeAndPrepare.
func (r *CreateUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return dErrors.New(dErrors.CodeValidation, "email must be a valid address")
	}
	if len(r.Password) < 6 {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 6 characters")
	}
	r.FullName = strings.TrimSpace(r.FullName)
	if r.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full_name is required")
	}
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}

	role, err := models.ParseRole(strings.TrimSpace(r.Role))
	if err != nil {
		return err
	}
	r.parsedRole = role
	return nil
}

func (r *CreateUserRequest) ParsedRole() models.Role { return r.parsedRole }
